// Package ingestion implements the Coordinator: the orchestration
// layer that turns each inbound partner-company event into a profile
// reconciliation, a disclosure refresh, and a statement backfill,
// writing through the persistence layer. Only the profile
// reconciliation runs inside a transaction; the disclosure and
// statement writes are made after it commits, each outside any
// transaction.
package ingestion

import (
	"context"
	"errors"
	"time"

	"github.com/dsight/partner-risk-core/internal/partnercore/events"
	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/persistence"
	"github.com/dsight/partner-risk-core/internal/partnercore/xerrors"
	"go.uber.org/zap"
)

// EDSClient is the subset of the disclosure-system client the
// Coordinator depends on, narrowed to an interface so tests can supply
// canned responses without a network round trip.
type EDSClient interface {
	GetCompanyProfile(ctx context.Context, corpCode string) (*models.CompanyProfile, error)
	SearchDisclosures(ctx context.Context, corpCode string, begin, end time.Time) ([]models.Disclosure, error)
	GetFinancialStatement(ctx context.Context, corpCode, year string, reportCode models.ReportCode, division models.ConsolidationDivision) ([]models.FinancialStatementRow, error)
}

// statementPeriod is one (year, report_code) pair the Coordinator
// refreshes for every event, in the fixed order spec.md §4.4 mandates.
type statementPeriod struct {
	year       string
	reportCode models.ReportCode
}

// Coordinator consumes PartnerEvent values and reconciles the
// persisted profile, disclosures, and financial statements for the
// event's corp_code.
type Coordinator struct {
	repo   *persistence.Repository
	eds    EDSClient
	logger *zap.Logger
	// now is overridden in tests to pin the (last_year, this_year) window.
	now func() time.Time
}

func NewCoordinator(repo *persistence.Repository, eds EDSClient, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		repo:   repo,
		eds:    eds,
		logger: logger.Named("ingestion_coordinator"),
		now:    time.Now,
	}
}

// Handle is the Subscriber handler entry point. It never returns an
// error that would trigger a retry loop — unexpected failures are
// logged and swallowed, per spec.md §4.4's "logged and acknowledged"
// policy — but it does return the profile-reconciliation error (if
// any) so callers and tests can observe what happened.
func (c *Coordinator) Handle(ctx context.Context, event events.PartnerEvent) error {
	if event.CorpCode == nil || *event.CorpCode == "" {
		c.logger.Debug("ignoring event with no corp_code", zap.String("action", string(event.Action)))
		return nil
	}
	corpCode := *event.CorpCode

	var profile *models.CompanyProfile
	err := c.repo.WithTransaction(ctx, func(tx *persistence.Repository) error {
		p, err := c.reconcileProfile(ctx, tx, corpCode)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	if err != nil {
		c.logger.Error("profile reconciliation failed, aborting event", zap.String("corp_code", corpCode), zap.Error(err))
		return err
	}

	c.refreshDisclosures(ctx, profile)
	c.refreshStatements(ctx, profile)
	return nil
}

// reconcileProfile implements spec.md §4.4 step 1.
func (c *Coordinator) reconcileProfile(ctx context.Context, tx *persistence.Repository, corpCode string) (*models.CompanyProfile, error) {
	existing, err := tx.FindAllProfilesByCorpCode(ctx, corpCode)
	if err != nil {
		return nil, err
	}

	if len(existing) > 0 {
		canonical := pickCanonical(existing)
		for i := range existing {
			if existing[i].InternalID != canonical.InternalID {
				c.logger.Info("ignoring duplicate profile",
					zap.String("corp_code", corpCode),
					zap.Int64("ignored_id", existing[i].InternalID),
					zap.Int64("canonical_id", canonical.InternalID),
				)
			}
		}

		if canonical.MissingCoreFields() {
			fresh, err := c.eds.GetCompanyProfile(ctx, corpCode)
			if err != nil {
				return nil, err
			}
			if fresh != nil {
				canonical.MergeFrom(fresh)
				if err := tx.UpsertProfile(ctx, &canonical); err != nil {
					return nil, err
				}
			}
		}
		return &canonical, nil
	}

	fresh, err := c.eds.GetCompanyProfile(ctx, corpCode)
	if err != nil {
		return nil, err
	}
	if fresh != nil {
		fresh.CorpCode = corpCode
		if err := tx.UpsertProfile(ctx, fresh); err != nil {
			return nil, err
		}
		return fresh, nil
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
		UserType: models.OwnerUnknown,
	}
	if err := tx.UpsertProfile(ctx, minimal); err != nil {
		return nil, err
	}
	return minimal, nil
}

func pickCanonical(profiles []models.CompanyProfile) models.CompanyProfile {
	best := profiles[0]
	bestScore := best.CompletenessScore()
	for _, p := range profiles[1:] {
		score := p.CompletenessScore()
		if score > bestScore || (score == bestScore && p.InternalID < best.InternalID) {
			best = p
			bestScore = score
		}
	}
	return best
}

// refreshDisclosures implements spec.md §4.4 step 2: best-effort,
// independent of step 3.
func (c *Coordinator) refreshDisclosures(ctx context.Context, profile *models.CompanyProfile) {
	end := c.now()
	begin := end.AddDate(-1, 0, 0)

	disclosures, err := c.eds.SearchDisclosures(ctx, profile.CorpCode, begin, end)
	if err != nil {
		c.logger.Warn("disclosure refresh failed", zap.String("corp_code", profile.CorpCode), zap.Error(err))
		return
	}

	for i := range disclosures {
		disclosures[i].CompanyProfileID = profile.InternalID
		if err := c.repo.InsertDisclosureIfAbsent(ctx, &disclosures[i]); err != nil {
			c.logger.Warn("failed to store disclosure",
				zap.String("corp_code", profile.CorpCode),
				zap.String("receipt_no", disclosures[i].ReceiptNo),
				zap.Error(err),
			)
		}
	}
}

// refreshStatements implements spec.md §4.4 step 3: four fixed
// (year, report_code) pairs, each independently best-effort, with an
// application-side duplicate-key skip so bulkInsert is never handed a
// row whose (account_id, statement_division) key already exists for
// the tuple.
func (c *Coordinator) refreshStatements(ctx context.Context, profile *models.CompanyProfile) {
	thisYear := c.now().Format("2006")
	lastYear := c.now().AddDate(-1, 0, 0).Format("2006")

	periods := []statementPeriod{
		{lastYear, models.ReportAnnual},
		{thisYear, models.ReportQ3},
		{thisYear, models.ReportHalf},
		{thisYear, models.ReportQ1},
	}

	for _, period := range periods {
		c.refreshStatementPeriod(ctx, profile.CorpCode, period)
	}
}

func (c *Coordinator) refreshStatementPeriod(ctx context.Context, corpCode string, period statementPeriod) {
	fetched, err := c.eds.GetFinancialStatement(ctx, corpCode, period.year, period.reportCode, models.ConsolidationSeparate)
	if err != nil {
		c.logger.Warn("statement fetch failed",
			zap.String("corp_code", corpCode), zap.String("year", period.year),
			zap.String("report_code", string(period.reportCode)), zap.Error(err),
		)
		return
	}
	if len(fetched) == 0 {
		return
	}

	existing, err := c.repo.FindStatementRowsByCorpYearReport(ctx, corpCode, period.year, period.reportCode)
	if err != nil {
		c.logger.Warn("failed to load existing statement rows",
			zap.String("corp_code", corpCode), zap.String("year", period.year), zap.Error(err),
		)
		return
	}

	existingKeys := make(map[models.PeriodKey]struct{}, len(existing))
	for _, row := range existing {
		existingKeys[row.Key()] = struct{}{}
	}

	fresh := make([]models.FinancialStatementRow, 0, len(fetched))
	for _, row := range fetched {
		row.CorpCode = corpCode
		row.BusinessYear = period.year
		row.ReportCode = period.reportCode
		if _, seen := existingKeys[row.Key()]; seen {
			continue
		}
		fresh = append(fresh, row)
	}

	if len(fresh) == 0 {
		return
	}
	if err := c.repo.BulkInsertStatementRows(ctx, fresh); err != nil {
		c.logger.Warn("failed to store statement rows",
			zap.String("corp_code", corpCode), zap.String("year", period.year), zap.Error(err),
		)
	}
}
