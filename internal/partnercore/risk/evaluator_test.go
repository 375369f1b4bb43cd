package risk

import (
	"testing"
	"time"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/xerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func row(accountName, thstrm, frmtrm string) models.FinancialStatementRow {
	return models.FinancialStatementRow{AccountName: accountName, ThstrmAmount: thstrm, FrmtrmAmount: frmtrm}
}

// TestEvaluate_NoRows covers scenario 6: a request against an empty
// tuple returns exactly one synthetic item.
func TestEvaluate_NoRows(t *testing.T) {
	e := NewEvaluator(zaptest.NewLogger(t))
	assessment := e.Evaluate(nil, "00126380", "2024", models.ReportAnnual)

	require.Len(t, assessment.Items, 1)
	assert.Equal(t, 0, assessment.Items[0].ItemNumber)
	assert.True(t, assessment.Items[0].IsAtRisk)
	assert.NotNil(t, assessment.Items[0].Notes)
}

// TestEvaluate_Item1_RevenueDecline covers scenario 4 verbatim.
func TestEvaluate_Item1_RevenueDecline(t *testing.T) {
	e := NewEvaluator(zaptest.NewLogger(t))
	rows := []models.FinancialStatementRow{
		row("매출액", "1,000,000,000", "2,000,000,000"),
	}
	assessment := e.Evaluate(rows, "00126380", "2024", models.ReportAnnual)

	item1 := findItem(t, assessment, 1)
	assert.True(t, item1.IsAtRisk)
	assert.Equal(t, "-50.00%", item1.ActualValue)
}

// TestEvaluate_Item11_CapitalImpairment covers scenario 5 verbatim.
func TestEvaluate_Item11_CapitalImpairment(t *testing.T) {
	e := NewEvaluator(zaptest.NewLogger(t))
	rows := []models.FinancialStatementRow{
		row("부채총계", "500", ""),
		row("자본총계", "-100", ""),
	}
	assessment := e.Evaluate(rows, "00126380", "2024", models.ReportAnnual)

	item11 := findItem(t, assessment, 11)
	assert.True(t, item11.IsAtRisk)
	assert.Equal(t, "자본잠식 -100", item11.ActualValue)
	require.NotNil(t, item11.Notes)
	assert.Equal(t, "자본총계가 음수(자본잠식)", *item11.Notes)
}

func TestEvaluate_Item2_SkipsWhenPriorNotProfitable(t *testing.T) {
	e := NewEvaluator(zaptest.NewLogger(t))
	rows := []models.FinancialStatementRow{
		row("영업이익", "-100", "-50"),
	}
	assessment := e.Evaluate(rows, "00126380", "2024", models.ReportAnnual)

	item2 := findItem(t, assessment, 2)
	assert.False(t, item2.IsAtRisk)
	assert.NotNil(t, item2.Notes)
}

func TestEvaluate_Item6_OperatingLoss(t *testing.T) {
	e := NewEvaluator(zaptest.NewLogger(t))
	rows := []models.FinancialStatementRow{row("영업이익", "-1", "")}
	assessment := e.Evaluate(rows, "00126380", "2024", models.ReportAnnual)

	item6 := findItem(t, assessment, 6)
	assert.True(t, item6.IsAtRisk)
	assert.Equal(t, "-1", item6.ActualValue)
}

func TestEvaluate_Item9_ZeroDenominatorWithPositiveNumeratorIsAtRisk(t *testing.T) {
	e := NewEvaluator(zaptest.NewLogger(t))
	rows := []models.FinancialStatementRow{
		row("단기차입금", "100", ""),
		row("장기차입금", "0", ""),
		row("자산총계", "0", ""),
	}
	assessment := e.Evaluate(rows, "00126380", "2024", models.ReportAnnual)

	item9 := findItem(t, assessment, 9)
	assert.True(t, item9.IsAtRisk, "positive borrowings over zero assets must be flagged, per the special zero-denominator rule")
}

func TestEvaluate_Item3_ZeroDenominatorIsNotAtRisk(t *testing.T) {
	e := NewEvaluator(zaptest.NewLogger(t))
	rows := []models.FinancialStatementRow{
		row("매출액", "1000", ""),
		row("매출채권", "0", ""),
	}
	assessment := e.Evaluate(rows, "00126380", "2024", models.ReportAnnual)

	item3 := findItem(t, assessment, 3)
	assert.False(t, item3.IsAtRisk, "item 3 is not one of the special zero-denominator-implies-risk cases")
	assert.NotNil(t, item3.Notes)
}

func TestEvaluate_Item12_CapitalImpairment(t *testing.T) {
	e := NewEvaluator(zaptest.NewLogger(t))
	rows := []models.FinancialStatementRow{
		row("자본총계", "100", ""),
		row("자본금", "500", ""),
	}
	assessment := e.Evaluate(rows, "00126380", "2024", models.ReportAnnual)

	item12 := findItem(t, assessment, 12)
	assert.True(t, item12.IsAtRisk)
}

func TestSelectAutomaticPeriod(t *testing.T) {
	tests := []struct {
		month        time.Month
		expectedYearOffset int
		expectedReport     models.ReportCode
	}{
		{time.January, -1, models.ReportQ3},
		{time.March, -1, models.ReportQ3},
		{time.April, -1, models.ReportAnnual},
		{time.June, -1, models.ReportAnnual},
		{time.July, 0, models.ReportQ1},
		{time.September, 0, models.ReportQ1},
		{time.October, 0, models.ReportHalf},
		{time.December, 0, models.ReportHalf},
	}
	for _, tt := range tests {
		now := time.Date(2024, tt.month, 15, 0, 0, 0, 0, time.UTC)
		year, reportCode := SelectAutomaticPeriod(now)
		expectedYear := "2024"
		if tt.expectedYearOffset == -1 {
			expectedYear = "2023"
		}
		assert.Equal(t, expectedYear, year, "month %s", tt.month)
		assert.Equal(t, tt.expectedReport, reportCode, "month %s", tt.month)
	}
}

func TestValidateManualSelection(t *testing.T) {
	assert.NoError(t, ValidateManualSelection("2024", models.ReportAnnual))
	assert.ErrorIs(t, ValidateManualSelection("1999", models.ReportAnnual), xerrors.ErrInvalidArgument)
	assert.ErrorIs(t, ValidateManualSelection("2031", models.ReportAnnual), xerrors.ErrInvalidArgument)
	assert.ErrorIs(t, ValidateManualSelection("2024", "99999"), xerrors.ErrInvalidArgument)
	assert.ErrorIs(t, ValidateManualSelection("abcd", models.ReportAnnual), xerrors.ErrInvalidArgument)
}

func TestDistinctPeriods_OrderingAndAutomaticFlag(t *testing.T) {
	now := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	periods := []models.DistinctPeriod{
		{Year: "2022", ReportCode: models.ReportAnnual, RowCount: 5},
		{Year: "2023", ReportCode: models.ReportQ3, RowCount: 3},
	}
	options := DistinctPeriods(periods, now)

	require.Len(t, options, 2)
	assert.Equal(t, "2023", options[0].Year, "newer year sorts first")
	assert.True(t, options[0].IsAutomaticSelection, "Jan-Mar automatic selection is last year's Q3")
	assert.False(t, options[1].IsAutomaticSelection)
	assert.NotEmpty(t, options[0].Description)
}

func findItem(t *testing.T, assessment RiskAssessment, number int) RiskItem {
	t.Helper()
	for _, item := range assessment.Items {
		if item.ItemNumber == number {
			return item
		}
	}
	t.Fatalf("item %d not found", number)
	return RiskItem{}
}
