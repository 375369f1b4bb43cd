package models

// ReportCode identifies the fiscal reporting period of a filing.
type ReportCode string

const (
	ReportAnnual ReportCode = "11011"
	ReportHalf   ReportCode = "11012"
	ReportQ1     ReportCode = "11013"
	ReportQ3     ReportCode = "11014"
)

// ValidReportCodes lists every report code accepted by the system.
var ValidReportCodes = []ReportCode{ReportAnnual, ReportHalf, ReportQ1, ReportQ3}

func (r ReportCode) Valid() bool {
	for _, c := range ValidReportCodes {
		if c == r {
			return true
		}
	}
	return false
}

// ConsolidationDivision selects separate vs. consolidated filings; it is
// the fs_div query parameter GetFinancialStatement sends to EDS, not a
// property stored on a row.
type ConsolidationDivision string

const (
	ConsolidationSeparate     ConsolidationDivision = "OFS"
	ConsolidationConsolidated ConsolidationDivision = "CFS"
)

// StatementDivision is EDS's sj_div: the sub-statement a line belongs
// to within one filing (balance sheet, income statement, cash flow,
// ...). Unlike ConsolidationDivision this is per-row, returned by EDS
// itself, and is not exhaustively enumerable here since EDS may add
// sub-statement codes; these constants cover the ones fnlttSinglAcntAll
// returns today.
type StatementDivision string

const (
	StatementDivisionBS  StatementDivision = "BS"  // 재무상태표 (balance sheet)
	StatementDivisionIS  StatementDivision = "IS"  // 손익계산서 (income statement)
	StatementDivisionCIS StatementDivision = "CIS" // 포괄손익계산서 (comprehensive income)
	StatementDivisionCF  StatementDivision = "CF"  // 현금흐름표 (cash flow)
	StatementDivisionSCE StatementDivision = "SCE" // 자본변동표 (changes in equity)
)

// FinancialStatementRow is one statement line. Its logical key is
// (CorpCode, BusinessYear, ReportCode, StatementDivision, AccountID);
// duplicate detection within one (CorpCode, BusinessYear, ReportCode)
// tuple additionally keys on (AccountID, StatementDivision).
//
// Amounts are kept as EDS's comma-formatted signed decimal strings;
// "-" denotes an absent value. Conversion to decimal.Decimal happens
// only inside the risk evaluator.
type FinancialStatementRow struct {
	CorpCode          string
	BusinessYear      string
	ReportCode        ReportCode
	StatementDivision StatementDivision
	AccountID         string
	AccountName       string

	ThstrmAmount    string
	ThstrmLabel     string
	FrmtrmAmount    string
	FrmtrmLabel     string
	ThstrmAddAmount string
	FrmtrmAddAmount string
	Bfefrmtrm       string
	BfefrmtrmLabel  string

	Currency string
}

// PeriodKey is the duplicate-detection key within one statement tuple.
type PeriodKey struct {
	AccountID         string
	StatementDivision StatementDivision
}

func (r *FinancialStatementRow) Key() PeriodKey {
	return PeriodKey{AccountID: r.AccountID, StatementDivision: r.StatementDivision}
}

// StatementTuple identifies one (corp, year, report) combination.
type StatementTuple struct {
	CorpCode   string
	Year       string
	ReportCode ReportCode
}

// DistinctPeriod summarizes one stored statement tuple, ordered by
// year then report code descending.
type DistinctPeriod struct {
	Year       string
	ReportCode ReportCode
	RowCount   int
}
