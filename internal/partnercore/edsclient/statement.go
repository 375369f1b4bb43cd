package edsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/xerrors"
	"go.uber.org/zap"
)

type statementResp struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	List    []statementItem `json:"list"`
}

type statementItem struct {
	CorpCode        string `json:"corp_code"`
	BsnsYear        string `json:"bsns_year"`
	ReprtCode       string `json:"reprt_code"`
	SjDiv           string `json:"sj_div"`
	AccountID       string `json:"account_id"`
	AccountNm       string `json:"account_nm"`
	ThstrmAmount    string `json:"thstrm_amount"`
	ThstrmNm        string `json:"thstrm_nm"`
	FrmtrmAmount    string `json:"frmtrm_amount"`
	FrmtrmNm        string `json:"frmtrm_nm"`
	ThstrmAddAmount string `json:"thstrm_add_amount"`
	FrmtrmAddAmount string `json:"frmtrm_add_amount"`
	BfefrmtrmAmount string `json:"bfefrmtrm_amount"`
	BfefrmtrmNm     string `json:"bfefrmtrm_nm"`
	Currency        string `json:"currency"`
}

// GetFinancialStatement fetches every line of one company's full
// financial statement for (year, reportCode, division). A non-"000"
// business status degrades to an empty slice (logged with the EDS
// message as the reason) rather than an error; only transport failure
// or a non-2xx response surfaces as ExternalSourceError.
func (c *Client) GetFinancialStatement(ctx context.Context, corpCode, year string, reportCode models.ReportCode, division models.ConsolidationDivision) ([]models.FinancialStatementRow, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, c.errExternal("getFinancialStatement", err)
	}

	reqCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	u, _ := url.Parse(c.baseURL + pathFinancialStmt)
	q := u.Query()
	q.Set("crtfc_key", c.apiKey)
	q.Set("corp_code", corpCode)
	q.Set("bsns_year", year)
	q.Set("reprt_code", string(reportCode))
	q.Set("fs_div", string(division))
	u.RawQuery = q.Encode()

	c.logRequest("getFinancialStatement", corpCode)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, c.errExternal("getFinancialStatement", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrExternalSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, xerrors.Wrapf(xerrors.ErrExternalSource, "fnlttSinglAcntAll.json status %d", resp.StatusCode)
	}

	var out statementResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrExternalSource, err)
	}

	if out.Status != statusOK {
		c.logger.Info("getFinancialStatement business error",
			zap.String("corp_code", corpCode),
			zap.String("year", year),
			zap.String("report_code", string(reportCode)),
			zap.String("status", out.Status),
			zap.String("message", out.Message),
		)
		return nil, nil
	}

	rows := make([]models.FinancialStatementRow, 0, len(out.List))
	for _, item := range out.List {
		rows = append(rows, models.FinancialStatementRow{
			CorpCode:          item.CorpCode,
			BusinessYear:      item.BsnsYear,
			ReportCode:        models.ReportCode(item.ReprtCode),
			StatementDivision: models.StatementDivision(item.SjDiv),
			AccountID:         item.AccountID,
			AccountName:       item.AccountNm,
			ThstrmAmount:      item.ThstrmAmount,
			ThstrmLabel:       item.ThstrmNm,
			FrmtrmAmount:      item.FrmtrmAmount,
			FrmtrmLabel:       item.FrmtrmNm,
			ThstrmAddAmount:   item.ThstrmAddAmount,
			FrmtrmAddAmount:   item.FrmtrmAddAmount,
			Bfefrmtrm:         item.BfefrmtrmAmount,
			BfefrmtrmLabel:    item.BfefrmtrmNm,
			Currency:          item.Currency,
		})
	}
	return rows, nil
}
