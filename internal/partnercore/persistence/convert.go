package persistence

import (
	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/persistence/schema"
	"github.com/google/uuid"
)

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func corpCodeToSchema(e models.CorpCodeEntry) schema.CorpCodeEntry {
	return schema.CorpCodeEntry{
		CorpCode:    e.CorpCode,
		CorpName:    e.CorpName,
		CorpNameEng: strOrEmpty(e.CorpNameEng),
		StockCode:   strOrEmpty(e.StockCode),
		ModifyDate:  e.ModifyDate,
	}
}

func corpCodeFromSchema(e schema.CorpCodeEntry) models.CorpCodeEntry {
	return models.CorpCodeEntry{
		CorpCode:    e.CorpCode,
		CorpName:    e.CorpName,
		CorpNameEng: emptyToNil(e.CorpNameEng),
		StockCode:   emptyToNil(e.StockCode),
		ModifyDate:  e.ModifyDate,
	}
}

func profileToSchema(p *models.CompanyProfile) *schema.CompanyProfile {
	return &schema.CompanyProfile{
		ID:              p.InternalID,
		CorpCode:        p.CorpCode,
		CorpName:        p.CorpName,
		CorpNameEng:     strOrEmpty(p.CorpNameEng),
		StockCode:       strOrEmpty(p.StockCode),
		StockName:       strOrEmpty(p.StockName),
		CEOName:         strOrEmpty(p.CEOName),
		MarketClass:     strOrEmpty(p.MarketClass),
		BusinessNo:      strOrEmpty(p.BusinessNo),
		RegistrationNo:  strOrEmpty(p.RegistrationNo),
		Address:         strOrEmpty(p.Address),
		HomepageURL:     strOrEmpty(p.HomepageURL),
		IRURL:           strOrEmpty(p.IRURL),
		PhoneNumber:     strOrEmpty(p.PhoneNumber),
		FaxNumber:       strOrEmpty(p.FaxNumber),
		IndustryCode:    strOrEmpty(p.IndustryCode),
		EstablishDate:   strOrEmpty(p.EstablishDate),
		AccountingMonth: strOrEmpty(p.AccountingMonth),
		HeadquartersID:  p.HeadquartersID,
		PartnerID:       p.PartnerID,
		UserType:        string(p.UserType),
	}
}

func profileFromSchema(s *schema.CompanyProfile) *models.CompanyProfile {
	userType := models.OwnerUnknown
	if s.UserType != "" {
		userType = models.OwnerKind(s.UserType)
	}
	return &models.CompanyProfile{
		InternalID:      s.ID,
		CorpCode:        s.CorpCode,
		CorpName:        s.CorpName,
		CorpNameEng:     emptyToNil(s.CorpNameEng),
		StockCode:       emptyToNil(s.StockCode),
		StockName:       emptyToNil(s.StockName),
		CEOName:         emptyToNil(s.CEOName),
		MarketClass:     emptyToNil(s.MarketClass),
		BusinessNo:      emptyToNil(s.BusinessNo),
		RegistrationNo:  emptyToNil(s.RegistrationNo),
		Address:         emptyToNil(s.Address),
		HomepageURL:     emptyToNil(s.HomepageURL),
		IRURL:           emptyToNil(s.IRURL),
		PhoneNumber:     emptyToNil(s.PhoneNumber),
		FaxNumber:       emptyToNil(s.FaxNumber),
		IndustryCode:    emptyToNil(s.IndustryCode),
		EstablishDate:   emptyToNil(s.EstablishDate),
		AccountingMonth: emptyToNil(s.AccountingMonth),
		HeadquartersID:  s.HeadquartersID,
		PartnerID:       s.PartnerID,
		UserType:        userType,
	}
}

func disclosureToSchema(d *models.Disclosure) *schema.Disclosure {
	return &schema.Disclosure{
		ReceiptNo:        d.ReceiptNo,
		CorpCode:         d.CorpCode,
		CorpName:         d.CorpName,
		StockCode:        strOrEmpty(d.StockCode),
		CorpClass:        strOrEmpty(d.CorpClass),
		ReportName:       d.ReportName,
		SubmitterName:    strOrEmpty(d.SubmitterName),
		ReceiptDate:      d.ReceiptDate,
		Remark:           strOrEmpty(d.Remark),
		CompanyProfileID: d.CompanyProfileID,
	}
}

func statementRowToSchema(r models.FinancialStatementRow) schema.FinancialStatementRow {
	return schema.FinancialStatementRow{
		CorpCode:          r.CorpCode,
		BusinessYear:      r.BusinessYear,
		ReportCode:        string(r.ReportCode),
		StatementDivision: string(r.StatementDivision),
		AccountID:         r.AccountID,
		AccountName:       r.AccountName,
		ThstrmAmount:      r.ThstrmAmount,
		ThstrmLabel:       r.ThstrmLabel,
		FrmtrmAmount:      r.FrmtrmAmount,
		FrmtrmLabel:       r.FrmtrmLabel,
		ThstrmAddAmount:   r.ThstrmAddAmount,
		FrmtrmAddAmount:   r.FrmtrmAddAmount,
		Bfefrmtrm:         r.Bfefrmtrm,
		BfefrmtrmLabel:    r.BfefrmtrmLabel,
		Currency:          r.Currency,
	}
}

func statementRowFromSchema(s schema.FinancialStatementRow) models.FinancialStatementRow {
	return models.FinancialStatementRow{
		CorpCode:          s.CorpCode,
		BusinessYear:      s.BusinessYear,
		ReportCode:        models.ReportCode(s.ReportCode),
		StatementDivision: models.StatementDivision(s.StatementDivision),
		AccountID:         s.AccountID,
		AccountName:       s.AccountName,
		ThstrmAmount:      s.ThstrmAmount,
		ThstrmLabel:       s.ThstrmLabel,
		FrmtrmAmount:      s.FrmtrmAmount,
		FrmtrmLabel:       s.FrmtrmLabel,
		ThstrmAddAmount:   s.ThstrmAddAmount,
		FrmtrmAddAmount:   s.FrmtrmAddAmount,
		Bfefrmtrm:         s.Bfefrmtrm,
		BfefrmtrmLabel:    s.BfefrmtrmLabel,
		Currency:          s.Currency,
	}
}

func partnerToSchema(p *models.PartnerCompany) *schema.PartnerCompany {
	return &schema.PartnerCompany{
		ID:                p.ID.String(),
		CorpCode:          p.CorpCode,
		OwnerKind:         string(p.Owner.Kind),
		OwnerID:           p.Owner.ID,
		ContractStartDate: p.ContractStartDate,
		Status:            string(p.Status),
		AccountCreated:    p.AccountCreated,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func partnerFromSchema(s *schema.PartnerCompany) (*models.PartnerCompany, error) {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return nil, err
	}
	return &models.PartnerCompany{
		ID:                id,
		CorpCode:          s.CorpCode,
		Owner:             models.Owner{Kind: models.OwnerKind(s.OwnerKind), ID: s.OwnerID},
		ContractStartDate: s.ContractStartDate,
		Status:            models.PartnerStatus(s.Status),
		AccountCreated:    s.AccountCreated,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}, nil
}
