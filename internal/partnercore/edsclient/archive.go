package edsclient

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/xerrors"
)

// corpCodeXML mirrors the archive's root <result> element: status,
// message, and a repeated <list> of corp-code entries.
type corpCodeXML struct {
	XMLName xml.Name `xml:"result"`
	Status  string   `xml:"status"`
	Message string   `xml:"message"`
	List    []corpCodeItem `xml:"list"`
}

type corpCodeItem struct {
	CorpCode    string `xml:"corp_code"`
	CorpName    string `xml:"corp_name"`
	CorpEngName string `xml:"corp_eng_name"`
	StockCode   string `xml:"stock_code"`
	ModifyDate  string `xml:"modify_date"`
}

// FetchCorpCodeArchive downloads the corp-code ZIP archive and returns
// its raw bytes. Any network failure or non-2xx response is an
// ExternalSourceError; unlike the profile/disclosure/statement calls,
// this endpoint never degrades to an empty result because the archive
// sync is the sole source of truth for the directory.
func (c *Client) FetchCorpCodeArchive(ctx context.Context) ([]byte, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, c.errExternal("fetchCorpCodeArchive", err)
	}

	reqCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	u, err := url.Parse(c.baseURL + pathCorpCodeArchive)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid eds base url: %v", xerrors.ErrInvariant, err)
	}
	q := u.Query()
	q.Set("crtfc_key", c.apiKey)
	u.RawQuery = q.Encode()

	c.logRequest("fetchCorpCodeArchive", "")

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, c.errExternal("fetchCorpCodeArchive", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrExternalSource, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrExternalSource, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, xerrors.Wrapf(xerrors.ErrExternalSource, "corpCode.xml status %d", resp.StatusCode)
	}

	return body, nil
}

// ParseCorpCodeArchive decodes the ZIP-wrapped XML document a
// FetchCorpCodeArchive call returns into directory entries. Parsing is
// kept separate from the HTTP call so it can be unit tested against
// fixture bytes without a network round trip.
func ParseCorpCodeArchive(archive []byte) ([]models.CorpCodeEntry, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("%w: corp code archive is not a valid zip: %v", xerrors.ErrTransientParsing, err)
	}

	var xmlBuf bytes.Buffer
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", xerrors.ErrTransientParsing, err)
		}
		_, copyErr := io.Copy(&xmlBuf, rc)
		rc.Close()
		if copyErr != nil {
			return nil, fmt.Errorf("%w: %v", xerrors.ErrTransientParsing, copyErr)
		}
	}

	var doc corpCodeXML
	if err := xml.NewDecoder(bytes.NewReader(xmlBuf.Bytes())).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrTransientParsing, err)
	}

	entries := make([]models.CorpCodeEntry, 0, len(doc.List))
	for _, item := range doc.List {
		entry := models.CorpCodeEntry{
			CorpCode:   strings.TrimSpace(item.CorpCode),
			CorpName:   strings.TrimSpace(item.CorpName),
			ModifyDate: strings.TrimSpace(item.ModifyDate),
		}
		if eng := strings.TrimSpace(item.CorpEngName); eng != "" {
			entry.CorpNameEng = &eng
		}
		if stock := strings.TrimSpace(item.StockCode); stock != "" {
			entry.StockCode = &stock
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
