package models

import (
	"time"

	"github.com/google/uuid"
)

// PartnerStatus is the lifecycle state of a PartnerCompany.
type PartnerStatus string

const (
	PartnerActive   PartnerStatus = "ACTIVE"
	PartnerInactive PartnerStatus = "INACTIVE"
)

// PartnerCompany is an owner-scoped linkage from an owner (headquarters
// or partner user) to a CompanyProfile.
type PartnerCompany struct {
	ID                uuid.UUID
	CorpCode          string
	Owner             Owner
	ContractStartDate time.Time
	Status            PartnerStatus
	AccountCreated    bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PartnerCompanyUpdate carries the fields updatePartnerCompany may
// change; nil pointers leave the corresponding field untouched.
type PartnerCompanyUpdate struct {
	ID                uuid.UUID
	CorpCode          *string
	ContractStartDate *time.Time
	Status            *PartnerStatus
}
