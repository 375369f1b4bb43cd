package risk

import (
	"strconv"
	"time"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/xerrors"
)

const (
	minManualYear = 2000
	maxManualYear = 2030
)

// SelectAutomaticPeriod picks the statement tuple most likely to
// already be filed, based on the DART publication cadence, per §4.6's
// month-range table.
func SelectAutomaticPeriod(now time.Time) (year string, reportCode models.ReportCode) {
	thisYear := now.Year()
	lastYear := thisYear - 1

	switch now.Month() {
	case time.January, time.February, time.March:
		return strconv.Itoa(lastYear), models.ReportQ3
	case time.April, time.May, time.June:
		return strconv.Itoa(lastYear), models.ReportAnnual
	case time.July, time.August, time.September:
		return strconv.Itoa(thisYear), models.ReportQ1
	default:
		return strconv.Itoa(thisYear), models.ReportHalf
	}
}

// ValidateManualSelection checks a caller-supplied (year, report_code)
// pair before it reaches the evaluator.
func ValidateManualSelection(year string, reportCode models.ReportCode) error {
	yearNum, err := strconv.Atoi(year)
	if err != nil || len(year) != 4 {
		return xerrors.Wrapf(xerrors.ErrInvalidArgument, "business_year must be a 4-digit year, got %q", year)
	}
	if yearNum < minManualYear || yearNum > maxManualYear {
		return xerrors.Wrapf(xerrors.ErrInvalidArgument, "business_year %d out of range [%d, %d]", yearNum, minManualYear, maxManualYear)
	}
	if !reportCode.Valid() {
		return xerrors.Wrapf(xerrors.ErrInvalidArgument, "report_code %q is not one of %v", reportCode, models.ValidReportCodes)
	}
	return nil
}
