package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/persistence/schema"
	"github.com/dsight/partner-risk-core/internal/partnercore/xerrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FindCorpCodeByCorpCode looks up one directory entry.
func (r *Repository) FindCorpCodeByCorpCode(ctx context.Context, corpCode string) (*models.CorpCodeEntry, error) {
	var row schema.CorpCodeEntry
	err := r.db.WithContext(ctx).First(&row, "corp_code = ?", corpCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	entry := corpCodeFromSchema(row)
	return &entry, nil
}

// FindCorpCodeByNameContaining performs a case-insensitive substring
// search over corp_name.
func (r *Repository) FindCorpCodeByNameContaining(ctx context.Context, needle string) ([]models.CorpCodeEntry, error) {
	var rows []schema.CorpCodeEntry
	err := r.db.WithContext(ctx).
		Where("LOWER(corp_name) LIKE LOWER(?)", "%"+needle+"%").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.CorpCodeEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, corpCodeFromSchema(row))
	}
	return out, nil
}

// UpsertCorpCodeEntries idempotently loads a directory sync: each
// entry is inserted or, on a corp_code conflict, has its mutable
// fields overwritten. Running the same archive twice leaves the
// directory unchanged, satisfying the archive-ingestion idempotence
// property.
func (r *Repository) UpsertCorpCodeEntries(ctx context.Context, entries []models.CorpCodeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]schema.CorpCodeEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, corpCodeToSchema(e))
	}

	const batchSize = 500
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "corp_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"corp_name", "corp_name_eng", "stock_code", "modify_date"}),
	}).CreateInBatches(rows, batchSize).Error
	if err != nil {
		return fmt.Errorf("failed to upsert corp code directory: %w", err)
	}
	return nil
}
