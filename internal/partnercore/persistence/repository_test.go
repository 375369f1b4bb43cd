package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/dsight/partner-risk-core/internal/partnercore/models"
	"github.com/dsight/partner-risk-core/internal/partnercore/xerrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestRepo opens an in-memory SQLite database and migrates every
// storage schema, mirroring the fixture the teacher's company store
// tests build.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	repo, err := NewRepositoryFromDB(db)
	require.NoError(t, err, "failed to migrate test database")
	return repo
}

func TestUpsertCorpCodeEntries_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	entries := []models.CorpCodeEntry{
		{CorpCode: "00126380", CorpName: "삼성전자", ModifyDate: "20240101"},
	}
	require.NoError(t, repo.UpsertCorpCodeEntries(ctx, entries))
	require.NoError(t, repo.UpsertCorpCodeEntries(ctx, entries), "re-applying the same archive must not error")

	found, err := repo.FindCorpCodeByCorpCode(ctx, "00126380")
	require.NoError(t, err)
	assert.Equal(t, "삼성전자", found.CorpName)

	entries[0].CorpName = "삼성전자(수정)"
	require.NoError(t, repo.UpsertCorpCodeEntries(ctx, entries))
	found, err = repo.FindCorpCodeByCorpCode(ctx, "00126380")
	require.NoError(t, err)
	assert.Equal(t, "삼성전자(수정)", found.CorpName, "conflicting corp_code should overwrite mutable fields")
}

func TestFindCorpCodeByCorpCode_NotFound(t *testing.T) {
	repo := setupTestRepo(t)
	_, err := repo.FindCorpCodeByCorpCode(context.Background(), "99999999")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestFindCorpCodeByNameContaining(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.UpsertCorpCodeEntries(ctx, []models.CorpCodeEntry{
		{CorpCode: "1", CorpName: "Alpha Holdings", ModifyDate: "20240101"},
		{CorpCode: "2", CorpName: "Beta Corp", ModifyDate: "20240101"},
	}))

	results, err := repo.FindCorpCodeByNameContaining(ctx, "alpha")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Alpha Holdings", results[0].CorpName)
}

func TestUpsertProfile_CreateThenUpdate(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	hqID := int64(42)
	profile := &models.CompanyProfile{
		CorpCode:       "00126380",
		CorpName:       "삼성전자",
		HeadquartersID: &hqID,
		UserType:       models.OwnerHeadquarters,
	}
	require.NoError(t, repo.UpsertProfile(ctx, profile))
	assert.NotZero(t, profile.InternalID, "Create should populate InternalID")

	profile.CEOName = ptr("한종희")
	require.NoError(t, repo.UpsertProfile(ctx, profile))

	loaded, err := repo.FindProfileByCorpCode(ctx, "00126380")
	require.NoError(t, err)
	require.NotNil(t, loaded.CEOName)
	assert.Equal(t, "한종희", *loaded.CEOName)
}

func TestFindProfileByOwnerAndCorpCode(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	hqID := int64(1)
	require.NoError(t, repo.UpsertProfile(ctx, &models.CompanyProfile{
		CorpCode: "A", HeadquartersID: &hqID, UserType: models.OwnerHeadquarters,
	}))

	owner := models.NewHeadquartersOwner(hqID)
	found, err := repo.FindProfileByOwnerAndCorpCode(ctx, owner, "A")
	require.NoError(t, err)
	assert.Equal(t, "A", found.CorpCode)

	_, err = repo.FindProfileByOwnerAndCorpCode(ctx, models.NewHeadquartersOwner(2), "A")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestInsertDisclosureIfAbsent_UniqueByReceiptNo(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	d := &models.Disclosure{
		ReceiptNo:   "20240101000123",
		CorpCode:    "00126380",
		CorpName:    "삼성전자",
		ReportName:  "사업보고서",
		ReceiptDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.InsertDisclosureIfAbsent(ctx, d))
	require.NoError(t, repo.InsertDisclosureIfAbsent(ctx, d), "re-inserting the same receipt_no must be a no-op, not an error")

	exists, err := repo.ExistsDisclosureByReceiptNo(ctx, d.ReceiptNo)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBulkInsertStatementRows_AndDistinctPeriods(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	rows := []models.FinancialStatementRow{
		{CorpCode: "00126380", BusinessYear: "2023", ReportCode: models.ReportAnnual, StatementDivision: models.StatementDivisionBS, AccountID: "ifrs-full_Assets", ThstrmAmount: "100"},
		{CorpCode: "00126380", BusinessYear: "2023", ReportCode: models.ReportAnnual, StatementDivision: models.StatementDivisionBS, AccountID: "ifrs-full_Liabilities", ThstrmAmount: "40"},
		// Same account_id as the row above, but a different sj_div: both
		// must survive since the dedup key is (account_id, statement_division).
		{CorpCode: "00126380", BusinessYear: "2023", ReportCode: models.ReportAnnual, StatementDivision: models.StatementDivisionIS, AccountID: "ifrs-full_Assets", ThstrmAmount: "100"},
		{CorpCode: "00126380", BusinessYear: "2022", ReportCode: models.ReportAnnual, StatementDivision: models.StatementDivisionBS, AccountID: "ifrs-full_Assets", ThstrmAmount: "90"},
	}
	require.NoError(t, repo.BulkInsertStatementRows(ctx, rows))

	existing, err := repo.FindStatementRowsByCorpYearReport(ctx, "00126380", "2023", models.ReportAnnual)
	require.NoError(t, err)
	assert.Len(t, existing, 3)

	var sawBS, sawIS bool
	for _, row := range existing {
		if row.AccountID != "ifrs-full_Assets" {
			continue
		}
		switch row.StatementDivision {
		case models.StatementDivisionBS:
			sawBS = true
		case models.StatementDivisionIS:
			sawIS = true
		}
	}
	assert.True(t, sawBS, "ifrs-full_Assets under BS must survive")
	assert.True(t, sawIS, "ifrs-full_Assets under IS must survive alongside it, not collide on account_id alone")

	periods, err := repo.DistinctStatementPeriods(ctx, "00126380")
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "2023", periods[0].Year, "periods should be ordered newest year first")
	assert.Equal(t, 3, periods[0].RowCount)
	assert.Equal(t, "2022", periods[1].Year)
	assert.Equal(t, 1, periods[1].RowCount)
}

func TestBulkInsertStatementRows_Empty(t *testing.T) {
	repo := setupTestRepo(t)
	assert.NoError(t, repo.BulkInsertStatementRows(context.Background(), nil))
}

func TestPartnerLifecycle_CreateListSoftDelete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	owner := models.NewHeadquartersOwner(7)

	p := &models.PartnerCompany{
		ID:                uuid.New(),
		CorpCode:          "00126380",
		Owner:             owner,
		ContractStartDate: time.Now(),
		Status:            models.PartnerActive,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	require.NoError(t, repo.CreatePartner(ctx, p))

	exists, err := repo.ExistsActivePartnerByOwnerAndCorpCode(ctx, owner, "00126380", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	active, err := repo.ListActivePartnersByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, active, 1)

	p.Status = models.PartnerInactive
	p.UpdatedAt = time.Now()
	require.NoError(t, repo.SavePartner(ctx, p))

	exists, err = repo.ExistsActivePartnerByOwnerAndCorpCode(ctx, owner, "00126380", nil)
	require.NoError(t, err)
	assert.False(t, exists, "soft-deleted partner should no longer count as active")

	inactive, err := repo.ListInactivePartnersByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, p.ID, inactive[0].ID)
}

func TestExistsActivePartnerByOwnerAndCorpCode_ExcludesID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	owner := models.NewPartnerOwner(3)

	p := &models.PartnerCompany{
		ID: uuid.New(), CorpCode: "X", Owner: owner,
		Status: models.PartnerActive, ContractStartDate: time.Now(),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.CreatePartner(ctx, p))

	excluded := p.ID
	exists, err := repo.ExistsActivePartnerByOwnerAndCorpCode(ctx, owner, "X", &excluded)
	require.NoError(t, err)
	assert.False(t, exists, "the row's own id should be excluded from the collision check")
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	err := repo.WithTransaction(ctx, func(tx *Repository) error {
		if e := tx.UpsertCorpCodeEntries(ctx, []models.CorpCodeEntry{
			{CorpCode: "ROLLBACK", CorpName: "should vanish", ModifyDate: "20240101"},
		}); e != nil {
			return e
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = repo.FindCorpCodeByCorpCode(ctx, "ROLLBACK")
	assert.ErrorIs(t, err, xerrors.ErrNotFound, "rolled-back transaction should not have persisted anything")
}

func ptr[T any](v T) *T { return &v }
