// Package schema holds the GORM-tagged storage structs for the
// partner disclosure and risk core. These are deliberately distinct
// from the domain types in models: the domain package models an owner
// as a tagged variant and links rows by corp_code, while this package
// flattens that shape into plain columns and integer foreign keys at
// the storage boundary, per the design note on ORM back-references.
package schema

import "time"

// CorpCodeEntry is the bulk EDS directory row.
type CorpCodeEntry struct {
	CorpCode    string `gorm:"primaryKey;size:8"`
	CorpName    string `gorm:"size:255;index"`
	CorpNameEng string `gorm:"size:255"`
	StockCode   string `gorm:"size:6"`
	ModifyDate  string `gorm:"size:8"`
}

func (CorpCodeEntry) TableName() string { return "corp_code_directory" }

// CompanyProfile is the authoritative per-corp record. CorpCode is
// intentionally not unique: duplicates can and do exist (see the
// completeness-score reconciliation in the ingestion coordinator).
type CompanyProfile struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	CorpCode       string `gorm:"size:8;index"`
	CorpName       string `gorm:"size:255"`
	CorpNameEng    string `gorm:"size:255"`
	StockCode      string `gorm:"size:6"`
	StockName      string `gorm:"size:255"`
	CEOName        string `gorm:"size:255"`
	MarketClass    string `gorm:"size:32"`
	BusinessNo     string `gorm:"size:32"`
	RegistrationNo string `gorm:"size:32"`
	Address        string `gorm:"size:1000"`
	HomepageURL    string `gorm:"size:500"`
	IRURL          string `gorm:"size:500"`
	PhoneNumber    string `gorm:"size:64"`
	FaxNumber      string `gorm:"size:64"`
	IndustryCode   string `gorm:"size:32"`
	EstablishDate  string `gorm:"size:8"`
	AccountingMonth string `gorm:"size:2"`

	// Owner tagged variant flattened to two nullable columns; only one
	// is ever set for a HEADQUARTERS/PARTNER owned profile.
	HeadquartersID *int64 `gorm:"index"`
	PartnerID      *int64 `gorm:"index"`
	UserType       string `gorm:"size:16"`
}

func (CompanyProfile) TableName() string { return "company_profiles" }

// Disclosure is one filing submission. ReceiptNo is the natural,
// globally unique primary key. CompanyProfileID is a plain integer
// column, not a GORM belongs-to association, so loading a disclosure
// never implicitly loads its profile.
type Disclosure struct {
	ReceiptNo        string `gorm:"primaryKey;size:32"`
	CorpCode         string `gorm:"size:8;index"`
	CorpName         string `gorm:"size:255"`
	StockCode        string `gorm:"size:6"`
	CorpClass        string `gorm:"size:8"`
	ReportName       string `gorm:"size:500"`
	SubmitterName    string `gorm:"size:255"`
	ReceiptDate      time.Time
	Remark           string `gorm:"size:500"`
	CompanyProfileID int64  `gorm:"index"`
}

func (Disclosure) TableName() string { return "disclosures" }

// FinancialStatementRow is one statement line, amounts kept as EDS's
// original comma-formatted strings. StatementDivision persists EDS's
// sj_div (the sub-statement within the filing — BS/IS/CIS/CF/SCE), not
// the fs_div consolidation flag used only as a fetch parameter.
type FinancialStatementRow struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	CorpCode          string `gorm:"size:8;index:idx_stmt_tuple"`
	BusinessYear      string `gorm:"size:4;index:idx_stmt_tuple"`
	ReportCode        string `gorm:"size:8;index:idx_stmt_tuple"`
	StatementDivision string `gorm:"size:8"`
	AccountID         string `gorm:"size:255"`
	AccountName       string `gorm:"size:255"`

	ThstrmAmount    string `gorm:"size:64"`
	ThstrmLabel     string `gorm:"size:255"`
	FrmtrmAmount    string `gorm:"size:64"`
	FrmtrmLabel     string `gorm:"size:255"`
	ThstrmAddAmount string `gorm:"size:64"`
	FrmtrmAddAmount string `gorm:"size:64"`
	Bfefrmtrm       string `gorm:"size:64"`
	BfefrmtrmLabel  string `gorm:"size:255"`

	Currency string `gorm:"size:8"`
}

func (FinancialStatementRow) TableName() string { return "financial_statement_rows" }

// PartnerCompany is the owner-scoped linkage from an owner to a
// CompanyProfile. Owner kind/id are two plain columns here; the
// domain package reconstitutes them into the tagged Owner variant.
type PartnerCompany struct {
	ID                string `gorm:"primaryKey;size:36"`
	CorpCode          string `gorm:"size:8;index"`
	OwnerKind         string `gorm:"size:16;index:idx_owner_scope"`
	OwnerID           int64  `gorm:"index:idx_owner_scope"`
	ContractStartDate time.Time
	Status            string `gorm:"size:16;index"`
	AccountCreated    bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (PartnerCompany) TableName() string { return "partner_companies" }
