package persistence

import (
	"context"
	"errors"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/persistence/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExistsDisclosureByReceiptNo checks whether a disclosure has already
// been recorded, independent of InsertDisclosureIfAbsent's own
// idempotence, for callers that just need a yes/no answer.
func (r *Repository) ExistsDisclosureByReceiptNo(ctx context.Context, receiptNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&schema.Disclosure{}).
		Where("receipt_no = ?", receiptNo).Count(&count).Error
	return count > 0, err
}

// InsertDisclosureIfAbsent inserts d unless a row with the same
// receipt_no already exists, in which case it is a no-op. This is the
// sole write path for disclosures and is what keeps re-applying the
// same inbound event free of duplicate rows.
func (r *Repository) InsertDisclosureIfAbsent(ctx context.Context, d *models.Disclosure) error {
	row := disclosureToSchema(d)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	return nil
}
