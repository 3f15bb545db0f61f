package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
	"github.com/SscSPs/valutatrade_hub/internal/models"
	"github.com/SscSPs/valutatrade_hub/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPortfolioRepository stores one portfolios row per user and one wallets row per balance.
type PgxPortfolioRepository struct {
	BaseRepository
}

func newPgxPortfolioRepository(db *pgxpool.Pool) *PgxPortfolioRepository {
	return &PgxPortfolioRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PortfolioRepositoryFacade = (*PgxPortfolioRepository)(nil)

func (r *PgxPortfolioRepository) FindPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error) {
	m := models.Portfolio{UserID: userID, Wallets: make(map[string]models.Wallet)}

	var updatedAt *time.Time
	err := r.Pool.QueryRow(ctx, `SELECT updated_at FROM portfolios WHERE user_id = $1;`, userID).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("portfolio for user " + userID)
		}
		return nil, dbError("find portfolio", err)
	}
	if updatedAt != nil {
		m.UpdatedAt = models.NewTimestamp(*updatedAt)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT currency_code, balance
		FROM wallets
		WHERE user_id = $1
		ORDER BY currency_code;
	`, userID)
	if err != nil {
		return nil, dbError("query wallets", err)
	}
	defer rows.Close()

	for rows.Next() {
		var w models.Wallet
		if err := rows.Scan(&w.CurrencyCode, &w.Balance); err != nil {
			return nil, dbError("scan wallet", err)
		}
		m.Wallets[w.CurrencyCode] = w
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("iterate wallets", err)
	}

	return mapping.ToDomainPortfolio(m)
}

// SavePortfolio replaces the stored wallets with the portfolio's wallets in one transaction.
func (r *PgxPortfolioRepository) SavePortfolio(ctx context.Context, portfolio *domain.Portfolio) error {
	m := mapping.ToModelPortfolio(portfolio)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var updatedAt any
	if !m.UpdatedAt.IsZero() {
		updatedAt = m.UpdatedAt.Time
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO portfolios (user_id, updated_at)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = EXCLUDED.updated_at;
	`, m.UserID, updatedAt); err != nil {
		return dbError("save portfolio", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM wallets WHERE user_id = $1;`, m.UserID); err != nil {
		return dbError("clear wallets", err)
	}

	batch := &pgx.Batch{}
	for _, w := range m.Wallets {
		batch.Queue(`INSERT INTO wallets (user_id, currency_code, balance) VALUES ($1, $2, $3);`,
			m.UserID, w.CurrencyCode, w.Balance)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return dbError("save wallets", err)
		}
	}

	return r.Commit(ctx, tx)
}
