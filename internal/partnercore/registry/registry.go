// Package registry implements the Partner Registry: owner-scoped
// bookkeeping of partner-company registrations, including duplicate
// name policy, soft delete, and restore, publishing events into the
// bus on create, restore, and update. A soft delete publishes no event.
package registry

import (
	"context"
	"errors"
	"time"

	"github.com/dsight/partner-risk-core/internal/partnercore/events"
	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/persistence"
	"github.com/dsight/partner-risk-core/internal/partnercore/xerrors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateResult reports which branch of the create algorithm ran, since
// a duplicate-active match is a normal outcome, not an error.
type CreateResult struct {
	Partner  *models.PartnerCompany
	Restored bool
	Created  bool
}

// Registry is the Partner Registry service. It talks to two topics per
// §4.3: eventsPublisher feeds the inbound partner-company-events topic
// the Ingestion Coordinator consumes, and restorePublisher feeds the
// outbound partner-company-restored topic that notifies other
// consumers a registration was reactivated rather than created fresh.
type Registry struct {
	repo             *persistence.Repository
	eventsPublisher  events.Publisher
	restorePublisher events.RestorePublisher
	logger           *zap.Logger
	now              func() time.Time
}

func NewRegistry(repo *persistence.Repository, eventsPublisher events.Publisher, restorePublisher events.RestorePublisher, logger *zap.Logger) *Registry {
	return &Registry{
		repo:             repo,
		eventsPublisher:  eventsPublisher,
		restorePublisher: restorePublisher,
		logger:           logger.Named("partner_registry"),
		now:              time.Now,
	}
}

// CreatePartnerCompany implements spec.md §4.5's registration algorithm.
func (r *Registry) CreatePartnerCompany(ctx context.Context, corpCode string, contractStart time.Time, headquartersID int64, partnerID *int64) (*CreateResult, error) {
	owner := models.OwnerFromIDs(headquartersID, partnerID)

	var result *CreateResult
	var resultProfile *models.CompanyProfile
	err := r.repo.WithTransaction(ctx, func(tx *persistence.Repository) error {
		profile, err := r.ensureCompanyProfile(ctx, tx, owner, corpCode)
		if err != nil {
			return err
		}
		resultProfile = profile

		if active, err := tx.FindPartnerByOwnerNameAndStatus(ctx, owner, profile.CorpName, models.PartnerActive); err == nil {
			result = &CreateResult{Partner: active, Restored: false, Created: false}
			return nil
		} else if !errors.Is(err, xerrors.ErrNotFound) {
			return err
		}

		if inactive, err := tx.FindPartnerByOwnerNameAndStatus(ctx, owner, profile.CorpName, models.PartnerInactive); err == nil {
			inactive.CorpCode = corpCode
			inactive.Owner = owner
			inactive.ContractStartDate = contractStart
			inactive.Status = models.PartnerActive
			inactive.UpdatedAt = r.now()
			if err := tx.SavePartner(ctx, inactive); err != nil {
				return err
			}
			result = &CreateResult{Partner: inactive, Restored: true, Created: false}
			return nil
		} else if !errors.Is(err, xerrors.ErrNotFound) {
			return err
		}

		fresh := &models.PartnerCompany{
			ID:                uuid.New(),
			CorpCode:          corpCode,
			Owner:             owner,
			ContractStartDate: contractStart,
			Status:            models.PartnerActive,
			AccountCreated:    false,
			CreatedAt:         r.now(),
			UpdatedAt:         r.now(),
		}
		if err := tx.CreatePartner(ctx, fresh); err != nil {
			return err
		}
		result = &CreateResult{Partner: fresh, Restored: false, Created: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case result.Restored:
		// The reactivated registration must be re-ingested (its profile
		// and disclosures may be stale), and the restore itself is
		// reported on the outbound notification topic.
		r.publish(r.eventsPublisher, result.Partner, events.PartnerCompanyRegistered)
		payload := partnerRestoredPayload(result.Partner, resultProfile)
		r.restorePublisher.PublishRestored(payload)
		r.logger.Info("published partner restored event", zap.String("partner_company_id", payload.ID))
	case result.Created:
		r.publish(r.eventsPublisher, result.Partner, events.PartnerCompanyRegistered)
	}
	return result, nil
}

// partnerRestoredPayload builds the full response-record payload the
// outbound partner-company-restored topic carries: PartnerCompany
// fields plus the CompanyProfile fields of the reactivated entity.
func partnerRestoredPayload(partner *models.PartnerCompany, profile *models.CompanyProfile) events.PartnerRestoredPayload {
	payload := events.PartnerRestoredPayload{
		ID:                partner.ID.String(),
		CorpCode:          partner.CorpCode,
		Status:            string(partner.Status),
		ContractStartDate: partner.ContractStartDate,
		CreatedAt:         partner.CreatedAt,
		UpdatedAt:         partner.UpdatedAt,
		AccountCreated:    partner.AccountCreated,
		UserType:          string(partner.Owner.Kind),
	}
	switch partner.Owner.Kind {
	case models.OwnerHeadquarters:
		id := partner.Owner.ID
		payload.HeadquartersID = &id
	case models.OwnerPartner:
		id := partner.Owner.ID
		payload.PartnerID = &id
	}
	if profile != nil {
		payload.CorpName = profile.CorpName
		payload.CorpNameEng = deref(profile.CorpNameEng)
		payload.StockCode = deref(profile.StockCode)
		payload.StockName = deref(profile.StockName)
		payload.CEOName = deref(profile.CEOName)
		payload.MarketClass = deref(profile.MarketClass)
		payload.BusinessNo = deref(profile.BusinessNo)
		payload.RegistrationNo = deref(profile.RegistrationNo)
		payload.Address = deref(profile.Address)
		payload.HomepageURL = deref(profile.HomepageURL)
		payload.IRURL = deref(profile.IRURL)
		payload.PhoneNumber = deref(profile.PhoneNumber)
		payload.FaxNumber = deref(profile.FaxNumber)
		payload.IndustryCode = deref(profile.IndustryCode)
		payload.EstablishDate = deref(profile.EstablishDate)
		payload.AccountingMonth = deref(profile.AccountingMonth)
	}
	return payload
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ensureCompanyProfile implements step 1 of §4.5: look up the profile
// this owner already has for corpCode, or synthesize a minimal one
// from the corp-code directory when none exists.
func (r *Registry) ensureCompanyProfile(ctx context.Context, tx *persistence.Repository, owner models.Owner, corpCode string) (*models.CompanyProfile, error) {
	profile, err := tx.FindProfileByOwnerAndCorpCode(ctx, owner, corpCode)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	entry, err := tx.FindCorpCodeByCorpCode(ctx, corpCode)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.Wrapf(xerrors.ErrNotFound, "corp_code %s not found in directory", corpCode)
		}
		return nil, err
	}

	minimal := &models.CompanyProfile{
		CorpCode: corpCode,
		CorpName: entry.CorpName,
		UserType: owner.Kind,
	}
	switch owner.Kind {
	case models.OwnerHeadquarters:
		minimal.HeadquartersID = &owner.ID
	case models.OwnerPartner:
		minimal.PartnerID = &owner.ID
	}
	if err := tx.UpsertProfile(ctx, minimal); err != nil {
		return nil, err
	}
	return minimal, nil
}

// UpdatePartnerCompany applies update, which may only change corp_code,
// contract_start_date, and status. Changing corp_code requires the new
// profile to already exist for this owner.
func (r *Registry) UpdatePartnerCompany(ctx context.Context, update models.PartnerCompanyUpdate) (*models.PartnerCompany, error) {
	var updated *models.PartnerCompany
	err := r.repo.WithTransaction(ctx, func(tx *persistence.Repository) error {
		partner, err := tx.FindPartnerByID(ctx, update.ID)
		if err != nil {
			return err
		}

		if update.CorpCode != nil && *update.CorpCode != partner.CorpCode {
			if _, err := tx.FindProfileByOwnerAndCorpCode(ctx, partner.Owner, *update.CorpCode); err != nil {
				if errors.Is(err, xerrors.ErrNotFound) {
					return xerrors.Wrapf(xerrors.ErrNotFound, "no profile for corp_code %s under this owner", *update.CorpCode)
				}
				return err
			}
			partner.CorpCode = *update.CorpCode
		}
		if update.ContractStartDate != nil {
			partner.ContractStartDate = *update.ContractStartDate
		}
		if update.Status != nil {
			partner.Status = *update.Status
		}
		partner.UpdatedAt = r.now()

		if err := tx.SavePartner(ctx, partner); err != nil {
			return err
		}
		updated = partner
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.publish(r.eventsPublisher, updated, events.PartnerCompanyUpdated)
	return updated, nil
}

// DeletePartnerCompany soft-deletes a partner company by flipping its
// status to INACTIVE.
func (r *Registry) DeletePartnerCompany(ctx context.Context, id uuid.UUID) error {
	return r.repo.WithTransaction(ctx, func(tx *persistence.Repository) error {
		partner, err := tx.FindPartnerByID(ctx, id)
		if err != nil {
			return err
		}
		partner.Status = models.PartnerInactive
		partner.UpdatedAt = r.now()
		return tx.SavePartner(ctx, partner)
	})
}

// CheckDuplicateName implements the standalone duplicate-name check
// endpoint from §4.5.
func (r *Registry) CheckDuplicateName(ctx context.Context, owner models.Owner, companyName string, excludeID *uuid.UUID) (bool, error) {
	return r.repo.ExistsActivePartnerByOwnerAndCompanyName(ctx, owner, companyName, excludeID)
}

func (r *Registry) publish(publisher events.Publisher, partner *models.PartnerCompany, action events.EventAction) {
	corpCode := partner.CorpCode
	partnerID := partner.ID.String()

	var headquartersID *int64
	if partner.Owner.Kind == models.OwnerHeadquarters {
		id := partner.Owner.ID
		headquartersID = &id
	}

	publisher.Publish(events.PartnerEvent{
		CorpCode:         &corpCode,
		Action:           action,
		PartnerCompanyID: &partnerID,
		HeadquartersID:   headquartersID,
		Timestamp:        r.now(),
	})
	r.logger.Info("published partner event", zap.String("action", string(action)), zap.String("partner_company_id", partnerID))
}
