package persistence

import (
	"context"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/persistence/schema"
)

// FindStatementRowsByCorpYearReport loads every stored row for one
// (corp_code, business_year, report_code) tuple, across every
// statement division (sj_div).
func (r *Repository) FindStatementRowsByCorpYearReport(ctx context.Context, corpCode, year string, reportCode models.ReportCode) ([]models.FinancialStatementRow, error) {
	var rows []schema.FinancialStatementRow
	err := r.db.WithContext(ctx).Where(
		"corp_code = ? AND business_year = ? AND report_code = ?",
		corpCode, year, string(reportCode),
	).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.FinancialStatementRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, statementRowFromSchema(row))
	}
	return out, nil
}

// BulkInsertStatementRows inserts every row given. Callers are
// responsible for filtering out rows whose (account_id,
// statement_division) key already exists for the tuple — this store
// never deletes or overwrites, it only appends.
func (r *Repository) BulkInsertStatementRows(ctx context.Context, rows []models.FinancialStatementRow) error {
	if len(rows) == 0 {
		return nil
	}
	schemaRows := make([]schema.FinancialStatementRow, 0, len(rows))
	for _, row := range rows {
		schemaRows = append(schemaRows, statementRowToSchema(row))
	}
	return r.db.WithContext(ctx).CreateInBatches(schemaRows, 200).Error
}

// DistinctStatementPeriods lists every (year, report_code) tuple
// stored for corpCode with its row count, ordered by year then
// report_code descending.
func (r *Repository) DistinctStatementPeriods(ctx context.Context, corpCode string) ([]models.DistinctPeriod, error) {
	type row struct {
		BusinessYear string
		ReportCode   string
		RowCount     int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&schema.FinancialStatementRow{}).
		Select("business_year, report_code, COUNT(*) as row_count").
		Where("corp_code = ?", corpCode).
		Group("business_year, report_code").
		Order("business_year DESC, report_code DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]models.DistinctPeriod, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.DistinctPeriod{
			Year:       r.BusinessYear,
			ReportCode: models.ReportCode(r.ReportCode),
			RowCount:   r.RowCount,
		})
	}
	return out, nil
}
