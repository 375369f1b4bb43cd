// Package risk implements the Risk Evaluator: a pure function over the
// financial statement rows persisted for one (corp_code, business_year,
// report_code) tuple, producing the twelve-item financial risk
// assessment and the available-periods presentation.
package risk

import "github.com/dsight/partner-risk-core/internal/partnercore/models"

// RiskItem is one line of the assessment.
type RiskItem struct {
	ItemNumber  int
	Description string
	IsAtRisk    bool
	ActualValue string
	Threshold   string
	Notes       *string
}

// RiskAssessment is the full response for one statement tuple.
type RiskAssessment struct {
	CorpCode     string
	BusinessYear string
	ReportCode   models.ReportCode
	Items        []RiskItem
}

// PeriodOption is one entry of the available-periods presentation.
type PeriodOption struct {
	Year                 string
	ReportCode           models.ReportCode
	ReportName           string
	Description          string
	RowCount             int
	IsAutomaticSelection bool
}
