package edsclient

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestArchive(t *testing.T, xmlBody string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("CORPCODE.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(xmlBody))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestParseCorpCodeArchive(t *testing.T) {
	xmlBody := `<?xml version="1.0" encoding="UTF-8"?>
<result>
	<status>000</status>
	<message>정상</message>
	<list>
		<corp_code>00126380</corp_code>
		<corp_name>삼성전자(주)</corp_name>
		<corp_eng_name>SAMSUNG ELECTRONICS CO,.LTD</corp_eng_name>
		<stock_code>005930</stock_code>
		<modify_date>20240101</modify_date>
	</list>
	<list>
		<corp_code>00164779</corp_code>
		<corp_name>비상장회사</corp_name>
		<corp_eng_name></corp_eng_name>
		<stock_code></stock_code>
		<modify_date>20240102</modify_date>
	</list>
</result>`

	entries, err := ParseCorpCodeArchive(buildTestArchive(t, xmlBody))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "00126380", entries[0].CorpCode)
	assert.Equal(t, "삼성전자(주)", entries[0].CorpName)
	require.NotNil(t, entries[0].StockCode)
	assert.Equal(t, "005930", *entries[0].StockCode)

	assert.Equal(t, "00164779", entries[1].CorpCode)
	assert.Nil(t, entries[1].StockCode)
	assert.Nil(t, entries[1].CorpNameEng)
}

func TestParseCorpCodeArchive_InvalidZip(t *testing.T) {
	_, err := ParseCorpCodeArchive([]byte("not a zip"))
	assert.Error(t, err)
}
