package edsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"go.uber.org/zap"
)

// sentinelSamsungCorpCode is the mock-mode fixture corp code the spec
// designates for a "full" offline profile.
const sentinelSamsungCorpCode = "00126380"

type companyProfileResp struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	CorpCode       string `json:"corp_code"`
	CorpName       string `json:"corp_name"`
	CorpNameEng    string `json:"corp_name_eng"`
	StockCode      string `json:"stock_code"`
	StockName      string `json:"stock_name"`
	CEOName        string `json:"ceo_nm"`
	MarketClass    string `json:"corp_cls"`
	BusinessNo     string `json:"bizr_no"`
	RegistrationNo string `json:"jurir_no"`
	Address        string `json:"adres"`
	HomepageURL    string `json:"hm_url"`
	IRURL          string `json:"ir_url"`
	PhoneNumber    string `json:"phn_no"`
	FaxNumber      string `json:"fax_no"`
	IndustryCode   string `json:"induty_code"`
	EstablishDate  string `json:"est_dt"`
	AccountingMonth string `json:"acc_mt"`
}

// GetCompanyProfile fetches one company's profile. Per spec, business
// failure (status != "000") and unparseable payloads both degrade to
// (nil, nil) rather than an error — only a context cancellation or
// deadline surfaces as an error, so the coordinator can distinguish
// "EDS says no such data" from "we couldn't even ask".
func (c *Client) GetCompanyProfile(ctx context.Context, corpCode string) (*models.CompanyProfile, error) {
	if c.mock {
		return mockProfile(corpCode), nil
	}

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	reqCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	u, _ := url.Parse(c.baseURL + pathCompanyProfile)
	q := u.Query()
	q.Set("crtfc_key", c.apiKey)
	q.Set("corp_code", corpCode)
	u.RawQuery = q.Encode()

	c.logRequest("getCompanyProfile", corpCode)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if reqCtx.Err() != nil {
			return nil, reqCtx.Err()
		}
		c.logger.Warn("getCompanyProfile transport error", zap.String("corp_code", corpCode), zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("getCompanyProfile non-2xx", zap.String("corp_code", corpCode), zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var out companyProfileResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Warn("getCompanyProfile parse error", zap.String("corp_code", corpCode), zap.Error(err))
		return nil, nil
	}

	if out.Status != statusOK {
		c.logger.Info("getCompanyProfile business error",
			zap.String("corp_code", corpCode),
			zap.String("status", out.Status),
			zap.String("message", out.Message),
		)
		return nil, nil
	}

	return profileFromResp(&out), nil
}

func profileFromResp(r *companyProfileResp) *models.CompanyProfile {
	ptr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	return &models.CompanyProfile{
		CorpCode:        r.CorpCode,
		CorpName:        r.CorpName,
		CorpNameEng:     ptr(r.CorpNameEng),
		StockCode:       ptr(r.StockCode),
		StockName:       ptr(r.StockName),
		CEOName:         ptr(r.CEOName),
		MarketClass:     ptr(r.MarketClass),
		BusinessNo:      ptr(r.BusinessNo),
		RegistrationNo:  ptr(r.RegistrationNo),
		Address:         ptr(r.Address),
		HomepageURL:     ptr(r.HomepageURL),
		IRURL:           ptr(r.IRURL),
		PhoneNumber:     ptr(r.PhoneNumber),
		FaxNumber:       ptr(r.FaxNumber),
		IndustryCode:    ptr(r.IndustryCode),
		EstablishDate:   ptr(r.EstablishDate),
		AccountingMonth: ptr(r.AccountingMonth),
	}
}

// mockProfile returns the deterministic offline fixture used when no
// real EDS key is configured. The sentinel code returns a fully
// populated profile; everything else returns the minimal fixture the
// spec describes.
func mockProfile(corpCode string) *models.CompanyProfile {
	str := func(s string) *string { return &s }

	if corpCode == sentinelSamsungCorpCode {
		return &models.CompanyProfile{
			CorpCode:        corpCode,
			CorpName:        "삼성전자(주)",
			CorpNameEng:     str("SAMSUNG ELECTRONICS CO,.LTD"),
			StockCode:       str("005930"),
			StockName:       str("삼성전자"),
			CEOName:         str("한종희, 전영현"),
			MarketClass:     str("Y"),
			BusinessNo:      str("1248100998"),
			RegistrationNo:  str("1301110006246"),
			Address:         str("경기도 수원시 영통구 삼성로 129 (매탄동)"),
			HomepageURL:     str("www.samsung.com/sec"),
			PhoneNumber:     str("02-2255-0114"),
			FaxNumber:       str("031-200-7538"),
			IndustryCode:    str("26410"),
			EstablishDate:   str("19690113"),
			AccountingMonth: str("12"),
		}
	}

	return &models.CompanyProfile{
		CorpCode:     corpCode,
		CorpName:     "테스트 회사명",
		IndustryCode: str("12345"),
	}
}
