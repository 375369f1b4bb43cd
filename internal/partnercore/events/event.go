// Package events implements the publish/subscribe adapter that
// decouples the Partner Registry from the Ingestion Coordinator: one
// inbound topic carries partner-company events, one outbound topic
// carries restore notifications. Delivery is at-least-once; consumers
// must be idempotent.
package events

import (
	"context"
	"time"
)

// EventAction identifies why a PartnerEvent was published.
type EventAction string

const (
	PartnerCompanyRegistered EventAction = "partner_company_registered"
	PartnerCompanyUpdated    EventAction = "partner_company_updated"
	PartnerCompanyRestored   EventAction = "partner_company_restored"
)

// PartnerEvent is the wire schema of the inbound partner-company-events
// topic; the restore topic carries PartnerRestoredPayload. CorpCode is
// optional only in shape — the Coordinator ignores any event whose
// CorpCode is empty, since there is nothing to reconcile.
type PartnerEvent struct {
	CorpCode         *string     `json:"corp_code,omitempty"`
	Action           EventAction `json:"action"`
	PartnerCompanyID *string     `json:"partner_company_id,omitempty"`
	HeadquartersID   *int64      `json:"headquarters_id,omitempty"`
	Timestamp        time.Time   `json:"timestamp"`
}

// Publisher is the minimal fire-and-forget contract the Registry needs.
// Implementations must not block the caller on broker latency; failures
// are logged internally rather than returned, per the design note that
// the publish future is observed but never awaited by the caller.
type Publisher interface {
	Publish(event PartnerEvent)
	Close() error
}

// PartnerRestoredPayload is the wire schema for the outbound
// partner-company-restored topic: the full partner response record
// (PartnerCompany fields plus the CompanyProfile fields of the entity
// that was reactivated), not the minimal PartnerEvent. Consumers of
// this topic rely on it to refresh a cached view of the partner
// without a follow-up lookup.
type PartnerRestoredPayload struct {
	ID                string        `json:"id"`
	CorpCode          string        `json:"corp_code"`
	Status            string        `json:"status"`
	ContractStartDate time.Time     `json:"contract_start_date"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	AccountCreated    bool          `json:"account_created"`

	HeadquartersID *int64 `json:"headquarters_id,omitempty"`
	PartnerID      *int64 `json:"partner_id,omitempty"`
	UserType       string `json:"user_type"`

	CorpName        string `json:"corp_name"`
	CorpNameEng     string `json:"corp_name_eng,omitempty"`
	StockCode       string `json:"stock_code,omitempty"`
	StockName       string `json:"stock_name,omitempty"`
	CEOName         string `json:"ceo_name,omitempty"`
	MarketClass     string `json:"market_class,omitempty"`
	BusinessNo      string `json:"business_no,omitempty"`
	RegistrationNo  string `json:"registration_no,omitempty"`
	Address         string `json:"address,omitempty"`
	HomepageURL     string `json:"homepage_url,omitempty"`
	IRURL           string `json:"ir_url,omitempty"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	FaxNumber       string `json:"fax_number,omitempty"`
	IndustryCode    string `json:"industry_code,omitempty"`
	EstablishDate   string `json:"establish_date,omitempty"`
	AccountingMonth string `json:"accounting_month,omitempty"`
}

// RestorePublisher is the fire-and-forget contract for the outbound
// partner-company-restored topic. Kept distinct from Publisher because
// the two topics carry different payload shapes (§6).
type RestorePublisher interface {
	PublishRestored(payload PartnerRestoredPayload)
	Close() error
}

// Subscriber is the minimal contract the Coordinator needs to receive
// inbound events. RegisterHandler must be called before Start. Start
// itself does not block; handler errors are logged and the message is
// still acknowledged, matching the "no retry loop, rely on bus
// redelivery" policy.
type Subscriber interface {
	RegisterHandler(fn func(context.Context, PartnerEvent) error)
	Start(ctx context.Context)
	Close() error
}
