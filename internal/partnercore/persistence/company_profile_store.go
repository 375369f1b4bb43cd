package persistence

import (
	"context"
	"errors"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/persistence/schema"
	"github.com/dsight/partner-risk-core/internal/partnercore/xerrors"
	"gorm.io/gorm"
)

// FindProfileByCorpCode returns the first profile row for corpCode, if
// any. Since duplicates may exist, callers that need the canonical
// profile should use FindAllProfilesByCorpCode instead.
func (r *Repository) FindProfileByCorpCode(ctx context.Context, corpCode string) (*models.CompanyProfile, error) {
	var row schema.CompanyProfile
	err := r.db.WithContext(ctx).Where("corp_code = ?", corpCode).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	return profileFromSchema(&row), nil
}

// FindAllProfilesByCorpCode returns every profile row for corpCode,
// including duplicates left behind by earlier reconciliations.
func (r *Repository) FindAllProfilesByCorpCode(ctx context.Context, corpCode string) ([]models.CompanyProfile, error) {
	var rows []schema.CompanyProfile
	if err := r.db.WithContext(ctx).Where("corp_code = ?", corpCode).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.CompanyProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, *profileFromSchema(&row))
	}
	return out, nil
}

// FindProfileByOwnerAndCorpCode looks up the profile a specific owner
// has already linked to corpCode.
func (r *Repository) FindProfileByOwnerAndCorpCode(ctx context.Context, owner models.Owner, corpCode string) (*models.CompanyProfile, error) {
	q := r.db.WithContext(ctx).Where("corp_code = ?", corpCode)
	switch owner.Kind {
	case models.OwnerHeadquarters:
		q = q.Where("headquarters_id = ?", owner.ID)
	case models.OwnerPartner:
		q = q.Where("partner_id = ?", owner.ID)
	}

	var row schema.CompanyProfile
	err := q.First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	return profileFromSchema(&row), nil
}

// UpsertProfile creates a new profile row when InternalID is zero, or
// saves every field of an existing one otherwise.
func (r *Repository) UpsertProfile(ctx context.Context, profile *models.CompanyProfile) error {
	row := profileToSchema(profile)
	if profile.InternalID == 0 {
		if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
			return err
		}
		profile.InternalID = row.ID
		return nil
	}
	return r.db.WithContext(ctx).Save(row).Error
}
