package risk

import (
	"sort"
	"time"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
)

var reportCodeNames = map[models.ReportCode]string{
	models.ReportAnnual: "사업보고서",
	models.ReportHalf:   "반기보고서",
	models.ReportQ1:     "1분기보고서",
	models.ReportQ3:     "3분기보고서",
}

// DistinctPeriods enriches the raw stored-period counts with a
// human-readable name, a Korean period description, and a flag marking
// whichever entry matches the automatic-selection tuple for now.
func DistinctPeriods(periods []models.DistinctPeriod, now time.Time) []PeriodOption {
	autoYear, autoReportCode := SelectAutomaticPeriod(now)

	out := make([]PeriodOption, 0, len(periods))
	for _, p := range periods {
		out = append(out, PeriodOption{
			Year:                 p.Year,
			ReportCode:           p.ReportCode,
			ReportName:           reportCodeNames[p.ReportCode],
			Description:          p.Year + "년 " + reportCodeNames[p.ReportCode],
			RowCount:             p.RowCount,
			IsAutomaticSelection: p.Year == autoYear && p.ReportCode == autoReportCode,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].ReportCode > out[j].ReportCode
	})
	return out
}
