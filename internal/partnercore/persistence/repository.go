// Package persistence provides the four durable entity stores the
// core needs — CorpCodeDirectory, CompanyProfile, Disclosure, and
// FinancialStatementRow — plus the owner-scoped PartnerCompany store,
// all implemented against GORM with idempotent upsert semantics.
package persistence

import (
	"context"
	"fmt"

	"github.com/dsight/partner-risk-core/internal/partnercore/config"
	"github.com/dsight/partner-risk-core/internal/partnercore/persistence/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Repository wraps a *gorm.DB and exposes every entity store as a
// method set on the same connection/transaction, mirroring the
// teacher's single-repository-per-transaction shape.
type Repository struct {
	db *gorm.DB
}

// NewRepository opens a Postgres connection per cfg and migrates the
// five storage schemas.
func NewRepository(cfg config.DBConfig) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewRepositoryFromDB wraps an already-open connection, used by tests
// against an in-memory SQLite database.
func NewRepositoryFromDB(db *gorm.DB) (*Repository, error) {
	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *Repository) migrate() error {
	return r.db.AutoMigrate(
		&schema.CorpCodeEntry{},
		&schema.CompanyProfile{},
		&schema.Disclosure{},
		&schema.FinancialStatementRow{},
		&schema.PartnerCompany{},
	)
}

// WithTransaction runs fn against a Repository bound to one
// transaction, committing on success and rolling back on error or
// panic (the ingestion coordinator runs each event's profile
// reconciliation in one such transaction; its disclosure and statement
// writes happen outside it).
func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
