package persistence

import (
	"context"
	"errors"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/persistence/schema"
	"github.com/dsight/partner-risk-core/internal/partnercore/xerrors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindPartnerByID loads a single partner company row by its uuid.
func (r *Repository) FindPartnerByID(ctx context.Context, id uuid.UUID) (*models.PartnerCompany, error) {
	var row schema.PartnerCompany
	err := r.db.WithContext(ctx).First(&row, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	return partnerFromSchema(&row)
}

// ListActivePartnersByOwner returns every ACTIVE partner company
// belonging to owner.
func (r *Repository) ListActivePartnersByOwner(ctx context.Context, owner models.Owner) ([]models.PartnerCompany, error) {
	return r.listPartnersByOwnerAndStatus(ctx, owner, models.PartnerActive)
}

// ListInactivePartnersByOwner returns every soft-deleted (INACTIVE)
// partner company belonging to owner, the pool restore draws from.
func (r *Repository) ListInactivePartnersByOwner(ctx context.Context, owner models.Owner) ([]models.PartnerCompany, error) {
	return r.listPartnersByOwnerAndStatus(ctx, owner, models.PartnerInactive)
}

func (r *Repository) listPartnersByOwnerAndStatus(ctx context.Context, owner models.Owner, status models.PartnerStatus) ([]models.PartnerCompany, error) {
	var rows []schema.PartnerCompany
	err := r.db.WithContext(ctx).Where(
		"owner_kind = ? AND owner_id = ? AND status = ?",
		string(owner.Kind), owner.ID, string(status),
	).Order("created_at asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.PartnerCompany, 0, len(rows))
	for i := range rows {
		p, err := partnerFromSchema(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// ExistsActivePartnerByOwnerAndCorpCode reports whether owner already
// has an ACTIVE partner company for corpCode, optionally excluding one
// id (used by update to allow a no-op corp_code change).
func (r *Repository) ExistsActivePartnerByOwnerAndCorpCode(ctx context.Context, owner models.Owner, corpCode string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&schema.PartnerCompany{}).Where(
		"owner_kind = ? AND owner_id = ? AND corp_code = ? AND status = ?",
		string(owner.Kind), owner.ID, corpCode, string(models.PartnerActive),
	)
	if excludeID != nil {
		q = q.Where("id <> ?", excludeID.String())
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindPartnerByOwnerNameAndStatus looks up the partner company owner
// has registered under companyName (matched case-insensitively against
// the linked CompanyProfile's corp_name) with the given status. Used
// by the registry's duplicate-name and restore checks in §4.5.
func (r *Repository) FindPartnerByOwnerNameAndStatus(ctx context.Context, owner models.Owner, companyName string, status models.PartnerStatus) (*models.PartnerCompany, error) {
	var row schema.PartnerCompany
	err := r.db.WithContext(ctx).Model(&schema.PartnerCompany{}).
		Select("partner_companies.*").
		Joins("JOIN company_profiles ON company_profiles.corp_code = partner_companies.corp_code").
		Where(
			"partner_companies.owner_kind = ? AND partner_companies.owner_id = ? AND partner_companies.status = ? AND LOWER(company_profiles.corp_name) = LOWER(?)",
			string(owner.Kind), owner.ID, string(status), companyName,
		).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	return partnerFromSchema(&row)
}

// ExistsActivePartnerByOwnerAndCompanyName is the duplicate-name check
// endpoint from §4.5: case-insensitive exact match against ACTIVE
// partners in owner's scope, optionally excluding one id for
// edit-self scenarios.
func (r *Repository) ExistsActivePartnerByOwnerAndCompanyName(ctx context.Context, owner models.Owner, companyName string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&schema.PartnerCompany{}).
		Joins("JOIN company_profiles ON company_profiles.corp_code = partner_companies.corp_code").
		Where(
			"partner_companies.owner_kind = ? AND partner_companies.owner_id = ? AND partner_companies.status = ? AND LOWER(company_profiles.corp_name) = LOWER(?)",
			string(owner.Kind), owner.ID, string(models.PartnerActive), companyName,
		)
	if excludeID != nil {
		q = q.Where("partner_companies.id <> ?", excludeID.String())
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreatePartner inserts a brand new partner company row.
func (r *Repository) CreatePartner(ctx context.Context, p *models.PartnerCompany) error {
	return r.db.WithContext(ctx).Create(partnerToSchema(p)).Error
}

// SavePartner overwrites every column of an existing partner company
// row, used both by field updates and by status transitions (soft
// delete, restore).
func (r *Repository) SavePartner(ctx context.Context, p *models.PartnerCompany) error {
	return r.db.WithContext(ctx).Save(partnerToSchema(p)).Error
}
