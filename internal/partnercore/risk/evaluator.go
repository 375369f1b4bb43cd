package risk

import (
	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const decimalPlaces = 4

var hundred = decimal.NewFromInt(100)

// Evaluator computes the twelve-item financial risk assessment. It
// holds no state beyond a logger — every method is a pure function of
// its arguments, per §4.6.
type Evaluator struct {
	logger *zap.Logger
}

func NewEvaluator(logger *zap.Logger) *Evaluator {
	return &Evaluator{logger: logger.Named("risk_evaluator")}
}

// Evaluate produces the assessment for one statement tuple. When rows
// is empty, it returns the synthetic "data unavailable" item instead
// of an error.
func (e *Evaluator) Evaluate(rows []models.FinancialStatementRow, corpCode, businessYear string, reportCode models.ReportCode) RiskAssessment {
	if len(rows) == 0 {
		note := "해당 회계연도/보고서에 대한 재무제표 데이터가 아직 동기화되지 않았습니다"
		return RiskAssessment{
			CorpCode:     corpCode,
			BusinessYear: businessYear,
			ReportCode:   reportCode,
			Items: []RiskItem{{
				ItemNumber:  0,
				Description: "재무 정보 조회",
				IsAtRisk:    true,
				ActualValue: "",
				Threshold:   "",
				Notes:       &note,
			}},
		}
	}

	items := []RiskItem{
		e.itemRevenueDecline(rows),
		e.itemOperatingIncomeDecline(rows),
		e.itemReceivablesTurnover(rows),
		e.itemReceivablesToRevenue(rows),
		e.itemPayablesTurnover(rows),
		e.itemOperatingLoss(rows),
		e.itemNegativeOperatingCashFlow(rows),
		e.itemBorrowingsGrowth(rows),
		e.itemBorrowingsToAssets(rows),
		e.itemShortTermBorrowingsRatio(rows),
		e.itemDebtToEquity(rows),
		e.itemCapitalImpairment(rows),
	}

	return RiskAssessment{CorpCode: corpCode, BusinessYear: businessYear, ReportCode: reportCode, Items: items}
}

func (e *Evaluator) lookup(rows []models.FinancialStatementRow, accountName string, field periodField) (decimal.Decimal, bool) {
	return lookupAmount(e.logger, rows, accountName, field)
}

func formatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

const noDataNote = "필요한 재무 데이터가 없습니다"

// percentChange computes (cur-prev)/|prev| * 100, rounded half-up to
// four fractional digits before the final ×100. Returns ok=false when
// prev is zero — the caller decides what that means for its item.
func percentChange(cur, prev decimal.Decimal) (decimal.Decimal, bool) {
	if prev.IsZero() {
		return decimal.Zero, false
	}
	return cur.Sub(prev).DivRound(prev.Abs(), decimalPlaces).Mul(hundred), true
}

// ratioPercent computes numerator/denominator * 100. ok is false when
// either operand is missing; zeroDenom is true when denominator is
// present but zero (division-by-zero case from §4.6).
func ratioPercent(numerator decimal.Decimal, numOK bool, denominator decimal.Decimal, denomOK bool) (pct decimal.Decimal, ok bool, zeroDenom bool) {
	if !numOK || !denomOK {
		return decimal.Zero, false, false
	}
	if denominator.IsZero() {
		return decimal.Zero, false, true
	}
	return numerator.DivRound(denominator, decimalPlaces).Mul(hundred), true, false
}

// item 1: revenue decline ≥30%.
func (e *Evaluator) itemRevenueDecline(rows []models.FinancialStatementRow) RiskItem {
	item := RiskItem{ItemNumber: 1, Description: "매출액 30% 이상 감소", Threshold: "≤ -30%"}
	cur, curOK := e.lookup(rows, "매출액", thstrmAmount)
	prev, prevOK := e.lookup(rows, "매출액", frmtrmAmount)
	if !curOK || !prevOK {
		item.Notes = ptr(noDataNote)
		return item
	}
	change, ok := percentChange(cur, prev)
	if !ok {
		item.Notes = ptr("전기 매출액이 0 — 변동률 정의 불가")
		return item
	}
	item.ActualValue = formatPercent(change)
	item.IsAtRisk = change.LessThanOrEqual(decimal.NewFromInt(-30))
	return item
}

// item 2: operating income decline ≥30%, only meaningful when the
// prior period was itself profitable.
func (e *Evaluator) itemOperatingIncomeDecline(rows []models.FinancialStatementRow) RiskItem {
	item := RiskItem{ItemNumber: 2, Description: "영업이익 30% 이상 감소", Threshold: "≤ -30%"}
	cur, curOK := e.lookup(rows, "영업이익", thstrmAmount)
	prev, prevOK := e.lookup(rows, "영업이익", frmtrmAmount)
	if !curOK || !prevOK {
		item.Notes = ptr(noDataNote)
		return item
	}
	if !prev.IsPositive() {
		item.Notes = ptr("전기 영업이익이 0 이하 — 감소율 판단 대상 아님")
		return item
	}
	change, ok := percentChange(cur, prev)
	if !ok {
		item.Notes = ptr("전기 영업이익이 0 — 변동률 정의 불가")
		return item
	}
	item.ActualValue = formatPercent(change)
	item.IsAtRisk = change.LessThanOrEqual(decimal.NewFromInt(-30))
	return item
}

// item 3: receivables turnover ≤3.
func (e *Evaluator) itemReceivablesTurnover(rows []models.FinancialStatementRow) RiskItem {
	item := RiskItem{ItemNumber: 3, Description: "매출채권 회전율 3회 이하", Threshold: "≤ 3"}
	revenue, revenueOK := e.lookup(rows, "매출액", thstrmAmount)
	receivables, receivablesOK := e.lookup(rows, "매출채권", thstrmAmount)
	if !revenueOK || !receivablesOK {
		item.Notes = ptr(noDataNote)
		return item
	}
	if receivables.IsZero() {
		item.Notes = ptr("매출채권이 0 — 회전율 정의 불가")
		return item
	}
	turnover := revenue.DivRound(receivables, decimalPlaces)
	item.ActualValue = turnover.StringFixed(2)
	item.IsAtRisk = turnover.LessThanOrEqual(decimal.NewFromInt(3))
	return item
}

// item 4: receivables/revenue ≥50%.
func (e *Evaluator) itemReceivablesToRevenue(rows []models.FinancialStatementRow) RiskItem {
	item := RiskItem{ItemNumber: 4, Description: "매출채권/매출액 비율 50% 이상", Threshold: "≥ 50%"}
	receivables, receivablesOK := e.lookup(rows, "매출채권", thstrmAmount)
	revenue, revenueOK := e.lookup(rows, "매출액", thstrmAmount)
	pct, ok, zeroDenom := ratioPercent(receivables, receivablesOK, revenue, revenueOK)
	if zeroDenom {
		if receivablesOK && receivables.IsPositive() {
			item.IsAtRisk = true
			item.ActualValue = "매출액 0, 매출채권 " + receivables.String()
			item.Notes = ptr("매출액이 0인 상태에서 매출채권이 존재")
			return item
		}
		item.Notes = ptr("매출액이 0 — 비율 정의 불가")
		return item
	}
	if !ok {
		item.Notes = ptr(noDataNote)
		return item
	}
	item.ActualValue = formatPercent(pct)
	item.IsAtRisk = pct.GreaterThanOrEqual(decimal.NewFromInt(50))
	return item
}

// item 5: payables turnover ≤2. Uses revenue in place of COGS, which
// is unavailable from this statement line set (§9 open question b).
func (e *Evaluator) itemPayablesTurnover(rows []models.FinancialStatementRow) RiskItem {
	item := RiskItem{ItemNumber: 5, Description: "매입채무 회전율 2회 이하", Threshold: "≤ 2"}
	revenue, revenueOK := e.lookup(rows, "매출액", thstrmAmount)
	payables, payablesOK := e.lookup(rows, "매입채무", thstrmAmount)
	if !revenueOK || !payablesOK {
		item.Notes = ptr(noDataNote)
		return item
	}
	if payables.IsZero() {
		item.Notes = ptr("매입채무가 0 — 회전율 정의 불가")
		return item
	}
	turnover := revenue.DivRound(payables, decimalPlaces)
	item.ActualValue = turnover.StringFixed(2)
	item.IsAtRisk = turnover.LessThanOrEqual(decimal.NewFromInt(2))
	return item
}

// item 6: operating loss.
func (e *Evaluator) itemOperatingLoss(rows []models.FinancialStatementRow) RiskItem {
	item := RiskItem{ItemNumber: 6, Description: "영업손실 발생", Threshold: "< 0"}
	value, ok := e.lookup(rows, "영업이익", thstrmAmount)
	if !ok {
		item.Notes = ptr(noDataNote)
		return item
	}
	item.ActualValue = value.String()
	item.IsAtRisk = value.IsNegative()
	return item
}

// item 7: negative operating cash flow.
func (e *Evaluator) itemNegativeOperatingCashFlow(rows []models.FinancialStatementRow) RiskItem {
	item := RiskItem{ItemNumber: 7, Description: "영업활동 현금흐름 마이너스", Threshold: "< 0"}
	value, ok := e.lookup(rows, "영업활동으로인한현금흐름", thstrmAmount)
	if !ok {
		item.Notes = ptr(noDataNote)
		return item
	}
	item.ActualValue = value.String()
	item.IsAtRisk = value.IsNegative()
	return item
}

func (e *Evaluator) totalBorrowings(rows []models.FinancialStatementRow, field periodField) (decimal.Decimal, bool) {
	shortTerm, shortOK := e.lookup(rows, "단기차입금", field)
	longTerm, longOK := e.lookup(rows, "장기차입금", field)
	return sumAmounts(shortTerm, shortOK, longTerm, longOK)
}

// item 8: total borrowings growth ≥30%.
func (e *Evaluator) itemBorrowingsGrowth(rows []models.FinancialStatementRow) RiskItem {
	item := RiskItem{ItemNumber: 8, Description: "총차입금 30% 이상 증가", Threshold: "≥ 30%"}
	cur, curOK := e.totalBorrowings(rows, thstrmAmount)
	prev, prevOK := e.totalBorrowings(rows, frmtrmAmount)
	if !curOK || !prevOK {
		item.Notes = ptr(noDataNote)
		return item
	}
	change, ok := percentChange(cur, prev)
	if !ok {
		item.Notes = ptr("전기 차입금이 0 — 변동률 정의 불가")
		return item
	}
	item.ActualValue = formatPercent(change)
	item.IsAtRisk = change.GreaterThanOrEqual(decimal.NewFromInt(30))
	return item
}

// item 9: borrowings/assets ≥50%.
func (e *Evaluator) itemBorrowingsToAssets(rows []models.FinancialStatementRow) RiskItem {
	item := RiskItem{ItemNumber: 9, Description: "총차입금/자산총계 비율 50% 이상", Threshold: "≥ 50%"}
	borrowings, borrowingsOK := e.totalBorrowings(rows, thstrmAmount)
	assets, assetsOK := e.lookup(rows, "자산총계", thstrmAmount)
	pct, ok, zeroDenom := ratioPercent(borrowings, borrowingsOK, assets, assetsOK)
	if zeroDenom {
		if borrowingsOK && borrowings.IsPositive() {
			item.IsAtRisk = true
			item.ActualValue = "자산총계 0, 총차입금 " + borrowings.String()
			item.Notes = ptr("자산총계가 0인 상태에서 차입금이 존재")
			return item
		}
		item.Notes = ptr("자산총계가 0 — 비율 정의 불가")
		return item
	}
	if !ok {
		item.Notes = ptr(noDataNote)
		return item
	}
	item.ActualValue = formatPercent(pct)
	item.IsAtRisk = pct.GreaterThanOrEqual(decimal.NewFromInt(50))
	return item
}

// item 10: short-term borrowings share of total borrowings ≥90%.
func (e *Evaluator) itemShortTermBorrowingsRatio(rows []models.FinancialStatementRow) RiskItem {
	item := RiskItem{ItemNumber: 10, Description: "단기차입금 비중 90% 이상", Threshold: "≥ 90%"}
	shortTerm, shortOK := e.lookup(rows, "단기차입금", thstrmAmount)
	total, totalOK := e.totalBorrowings(rows, thstrmAmount)
	pct, ok, zeroDenom := ratioPercent(shortTerm, shortOK, total, totalOK)
	if zeroDenom {
		item.Notes = ptr("총차입금이 0 — 비율 정의 불가")
		return item
	}
	if !ok {
		item.Notes = ptr(noDataNote)
		return item
	}
	item.ActualValue = formatPercent(pct)
	item.IsAtRisk = pct.GreaterThanOrEqual(decimal.NewFromInt(90))
	return item
}

// item 11: debt/equity ≥200%, with a capital-impairment override:
// negative equity is always at risk and reported without a percentage.
func (e *Evaluator) itemDebtToEquity(rows []models.FinancialStatementRow) RiskItem {
	item := RiskItem{ItemNumber: 11, Description: "부채비율 200% 이상", Threshold: "≥ 200%"}
	debt, debtOK := e.lookup(rows, "부채총계", thstrmAmount)
	equity, equityOK := e.lookup(rows, "자본총계", thstrmAmount)
	if !equityOK {
		item.Notes = ptr(noDataNote)
		return item
	}
	if equity.IsNegative() {
		item.IsAtRisk = true
		item.ActualValue = "자본잠식 " + equity.String()
		item.Notes = ptr("자본총계가 음수(자본잠식)")
		return item
	}
	pct, ok, zeroDenom := ratioPercent(debt, debtOK, equity, equityOK)
	if zeroDenom {
		if debtOK && debt.IsPositive() {
			item.IsAtRisk = true
			item.ActualValue = "자본총계 0, 부채총계 " + debt.String()
			item.Notes = ptr("자본총계가 0인 상태에서 부채가 존재")
			return item
		}
		item.Notes = ptr("자본총계가 0 — 비율 정의 불가")
		return item
	}
	if !ok {
		item.Notes = ptr(noDataNote)
		return item
	}
	item.ActualValue = formatPercent(pct)
	item.IsAtRisk = pct.GreaterThanOrEqual(decimal.NewFromInt(200))
	return item
}

// item 12: capital impairment (equity below paid-in capital).
func (e *Evaluator) itemCapitalImpairment(rows []models.FinancialStatementRow) RiskItem {
	item := RiskItem{ItemNumber: 12, Description: "자본잠식", Threshold: "자본총계 < 자본금"}
	equity, equityOK := e.lookup(rows, "자본총계", thstrmAmount)
	capital, capitalOK := e.lookup(rows, "자본금", thstrmAmount)
	if !equityOK || !capitalOK {
		item.Notes = ptr(noDataNote)
		return item
	}
	item.ActualValue = "자본총계 " + equity.String() + ", 자본금 " + capital.String()
	item.IsAtRisk = equity.LessThan(capital)
	return item
}

func ptr(s string) *string { return &s }
