package edsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/xerrors"
	"go.uber.org/zap"
)

type disclosureListResp struct {
	Status    string           `json:"status"`
	Message   string           `json:"message"`
	PageNo    int              `json:"page_no"`
	PageCount int              `json:"page_count"`
	TotalPage int              `json:"total_page"`
	List      []disclosureItem `json:"list"`
}

type disclosureItem struct {
	ReceiptNo     string `json:"rcept_no"`
	CorpCode      string `json:"corp_code"`
	CorpName      string `json:"corp_name"`
	StockCode     string `json:"stock_code"`
	CorpClass     string `json:"corp_cls"`
	ReportName    string `json:"report_nm"`
	SubmitterName string `json:"flr_nm"`
	ReceiptDate   string `json:"rcept_dt"`
	Remark        string `json:"rm"`
}

// SearchDisclosures lists disclosures for corpCode filed between begin
// and end (inclusive, YYYYMMDD granularity), paging through EDS's
// list.json at a fixed page size of 100. A 4xx/5xx response or
// transport failure surfaces as ExternalSourceError; the caller (the
// ingestion coordinator) treats a failed disclosure refresh as
// best-effort and does not abort other sub-steps because of it.
func (c *Client) SearchDisclosures(ctx context.Context, corpCode string, begin, end time.Time) ([]models.Disclosure, error) {
	var all []models.Disclosure
	page := 1

	for {
		resp, err := c.fetchDisclosurePage(ctx, corpCode, begin, end, page)
		if err != nil {
			return nil, err
		}

		for _, item := range resp.List {
			d, convErr := disclosureFromItem(item)
			if convErr != nil {
				c.logger.Warn("skipping disclosure with unparsable receipt date",
					zap.String("receipt_no", item.ReceiptNo), zap.Error(convErr))
				continue
			}
			all = append(all, d)
		}

		if page >= resp.TotalPage || resp.TotalPage == 0 {
			break
		}
		page++
	}

	return all, nil
}

func (c *Client) fetchDisclosurePage(ctx context.Context, corpCode string, begin, end time.Time, page int) (*disclosureListResp, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, c.errExternal("searchDisclosures", err)
	}

	reqCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	u, _ := url.Parse(c.baseURL + pathDisclosureList)
	q := u.Query()
	q.Set("crtfc_key", c.apiKey)
	q.Set("corp_code", corpCode)
	q.Set("bgn_de", begin.Format("20060102"))
	q.Set("end_de", end.Format("20060102"))
	q.Set("page_no", fmt.Sprint(page))
	q.Set("page_count", fmt.Sprint(disclosurePageSize))
	u.RawQuery = q.Encode()

	c.logRequest("searchDisclosures", corpCode)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, c.errExternal("searchDisclosures", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrExternalSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, xerrors.Wrapf(xerrors.ErrExternalSource, "list.json status %d", resp.StatusCode)
	}

	var out disclosureListResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrExternalSource, err)
	}

	if out.Status != statusOK {
		if out.Status == "013" { // no data found for the query — not an error
			return &disclosureListResp{}, nil
		}
		return nil, xerrors.Wrapf(xerrors.ErrExternalSource, "list.json business error %s: %s", out.Status, out.Message)
	}

	return &out, nil
}

func disclosureFromItem(item disclosureItem) (models.Disclosure, error) {
	receiptDate, err := time.Parse("20060102", item.ReceiptDate)
	if err != nil {
		return models.Disclosure{}, err
	}

	optional := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	return models.Disclosure{
		ReceiptNo:     item.ReceiptNo,
		CorpCode:      item.CorpCode,
		CorpName:      item.CorpName,
		StockCode:     optional(item.StockCode),
		CorpClass:     optional(item.CorpClass),
		ReportName:    item.ReportName,
		SubmitterName: optional(item.SubmitterName),
		ReceiptDate:   receiptDate,
		Remark:        optional(item.Remark),
	}, nil
}
