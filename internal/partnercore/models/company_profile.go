package models

// CompanyProfile is the authoritative per-corp record. Its natural
// identity is CorpCode; InternalID is the surrogate key used to break
// completeness-score ties and to link Disclosure rows without an ORM
// object graph.
type CompanyProfile struct {
	InternalID int64

	CorpCode      string
	CorpName      string
	CorpNameEng   *string
	StockCode     *string
	StockName     *string
	CEOName       *string
	MarketClass   *string
	BusinessNo    *string
	RegistrationNo *string
	Address       *string
	HomepageURL   *string
	IRURL         *string
	PhoneNumber   *string
	FaxNumber     *string
	IndustryCode  *string
	EstablishDate *string // YYYYMMDD
	AccountingMonth *string // MM

	HeadquartersID *int64
	PartnerID      *int64
	UserType       OwnerKind
}

// Owner reconstructs the tagged owner variant from the two nullable
// storage columns. Returns the zero Owner when UserType is UNKNOWN.
func (p *CompanyProfile) Owner() (Owner, bool) {
	switch {
	case p.PartnerID != nil:
		return NewPartnerOwner(*p.PartnerID), true
	case p.HeadquartersID != nil:
		return NewHeadquartersOwner(*p.HeadquartersID), true
	default:
		return Owner{}, false
	}
}

// completenessValues returns the values of the twelve descriptive
// fields (nil read as "") whose non-empty count forms the completeness
// score used to pick a canonical profile among duplicates.
func (p *CompanyProfile) completenessValues() []string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return []string{
		p.CorpName,
		deref(p.CEOName),
		deref(p.Address),
		deref(p.PhoneNumber),
		deref(p.BusinessNo),
		deref(p.IndustryCode),
		deref(p.EstablishDate),
		deref(p.AccountingMonth),
		deref(p.CorpNameEng),
		deref(p.StockCode),
		deref(p.HomepageURL),
		deref(p.FaxNumber),
	}
}

// CompletenessScore counts the non-empty descriptive fields on the
// profile. Used to select the canonical row among duplicates (§4.4).
func (p *CompanyProfile) CompletenessScore() int {
	score := 0
	for _, v := range p.completenessValues() {
		if v != "" {
			score++
		}
	}
	return score
}

// MissingCoreFields reports whether the profile lacks any of the five
// fields that trigger a re-fetch from EDS during reconciliation.
func (p *CompanyProfile) MissingCoreFields() bool {
	return p.CEOName == nil || *p.CEOName == "" ||
		p.Address == nil || *p.Address == "" ||
		p.PhoneNumber == nil || *p.PhoneNumber == "" ||
		p.BusinessNo == nil || *p.BusinessNo == "" ||
		p.IndustryCode == nil || *p.IndustryCode == ""
}

// MergeFrom overlays non-empty fields from a freshly fetched profile
// onto the receiver, leaving existing values in place when the fresh
// data has nothing new to offer.
func (p *CompanyProfile) MergeFrom(fresh *CompanyProfile) {
	overlay := func(dst **string, src *string) {
		if src != nil && *src != "" {
			*dst = src
		}
	}
	if fresh.CorpName != "" {
		p.CorpName = fresh.CorpName
	}
	overlay(&p.CorpNameEng, fresh.CorpNameEng)
	overlay(&p.StockCode, fresh.StockCode)
	overlay(&p.StockName, fresh.StockName)
	overlay(&p.CEOName, fresh.CEOName)
	overlay(&p.MarketClass, fresh.MarketClass)
	overlay(&p.BusinessNo, fresh.BusinessNo)
	overlay(&p.RegistrationNo, fresh.RegistrationNo)
	overlay(&p.Address, fresh.Address)
	overlay(&p.HomepageURL, fresh.HomepageURL)
	overlay(&p.IRURL, fresh.IRURL)
	overlay(&p.PhoneNumber, fresh.PhoneNumber)
	overlay(&p.FaxNumber, fresh.FaxNumber)
	overlay(&p.IndustryCode, fresh.IndustryCode)
	overlay(&p.EstablishDate, fresh.EstablishDate)
	overlay(&p.AccountingMonth, fresh.AccountingMonth)
}
