// Package edsclient is a typed, rate-limited HTTP client for the four
// EDS (Electronic Disclosure System) Open API endpoints this core
// consumes: the corp-code archive, a company profile, a disclosure
// list, and a single company's full financial statement.
package edsclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dsight/partner-risk-core/internal/partnercore/config"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	pathCorpCodeArchive = "/api/corpCode.xml"
	pathCompanyProfile  = "/api/company.json"
	pathDisclosureList  = "/api/list.json"
	pathFinancialStmt   = "/api/fnlttSinglAcntAll.json"

	statusOK = "000"

	disclosurePageSize = 100
)

// Client is the shared, rate-limited HTTP client for every EDS
// endpoint this core consumes. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	limiter    *rate.Limiter
	mock       bool
	logger     *zap.Logger
}

// New constructs a Client from the loaded EDS configuration. When the
// key is empty or equals config.EDSMockPlaceholder the client serves
// deterministic offline fixtures from GetCompanyProfile instead of
// calling out to the network; this mode exists solely for offline
// development and is a plain boolean, not a build tag, so tests can
// flip it freely.
func New(cfg config.EDSConfig, logger *zap.Logger) *Client {
	rps := cfg.RateLimitPerSecond
	if rps <= 0 {
		rps = 10
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		timeout:    timeout,
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)),
		mock:       cfg.IsMockMode(),
		logger:     logger.Named("eds_client"),
	}
}

// MockMode reports whether the client is currently serving offline
// fixtures rather than calling EDS.
func (c *Client) MockMode() bool {
	return c.mock
}

// maskedKey returns the API key with everything but the fact that it
// is present masked out, for safe inclusion in log fields.
func (c *Client) maskedKey() string {
	if c.apiKey == "" {
		return "<empty>"
	}
	return "***"
}

// throttle blocks until the shared token bucket admits one more
// outbound call, or the context is cancelled first.
func (c *Client) throttle(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}

// withTimeout derives a bounded context for one outbound call, layered
// under the caller's context so cancellation still propagates.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) logRequest(op, corpCode string) {
	c.logger.Debug("eds request",
		zap.String("op", op),
		zap.String("corp_code", corpCode),
		zap.String("crtfc_key", c.maskedKey()),
	)
}

func (c *Client) errExternal(op string, err error) error {
	return fmt.Errorf("eds %s: %w", op, err)
}
