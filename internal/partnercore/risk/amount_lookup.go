package risk

import (
	"strings"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// periodField selects one of the four amount columns EDS reports per
// statement row.
type periodField func(models.FinancialStatementRow) string

var (
	thstrmAmount    periodField = func(r models.FinancialStatementRow) string { return r.ThstrmAmount }
	frmtrmAmount    periodField = func(r models.FinancialStatementRow) string { return r.FrmtrmAmount }
	thstrmAddAmount periodField = func(r models.FinancialStatementRow) string { return r.ThstrmAddAmount }
	frmtrmAddAmount periodField = func(r models.FinancialStatementRow) string { return r.FrmtrmAddAmount }
)

// lookupAmount finds the first row whose account_name exactly matches
// accountName and parses the requested field as an arbitrary-precision
// decimal. "", "-", and unparseable values are all treated as absent;
// parse failures are logged rather than propagated, per §4.6.
func lookupAmount(logger *zap.Logger, rows []models.FinancialStatementRow, accountName string, field periodField) (decimal.Decimal, bool) {
	for _, row := range rows {
		if row.AccountName != accountName {
			continue
		}
		raw := strings.TrimSpace(field(row))
		if raw == "" || raw == "-" {
			return decimal.Zero, false
		}
		cleaned := strings.ReplaceAll(raw, ",", "")
		value, err := decimal.NewFromString(cleaned)
		if err != nil {
			logger.Warn("failed to parse statement amount",
				zap.String("account_name", accountName), zap.String("raw", raw), zap.Error(err))
			return decimal.Zero, false
		}
		return value, true
	}
	return decimal.Zero, false
}

// sumAmounts adds two optionally-absent amounts. The result is present
// only when at least one addend is present; an absent addend
// contributes zero.
func sumAmounts(a decimal.Decimal, aOK bool, b decimal.Decimal, bOK bool) (decimal.Decimal, bool) {
	if !aOK && !bOK {
		return decimal.Zero, false
	}
	return a.Add(b), true
}
