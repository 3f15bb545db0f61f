package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
	"github.com/SscSPs/valutatrade_hub/internal/models"
	"github.com/SscSPs/valutatrade_hub/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateRepository keeps the latest rate per pair in exchange_rates and every
// fetched rate in exchange_rate_history.
type PgxRateRepository struct {
	BaseRepository
}

func newPgxRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

func (r *PgxRateRepository) LoadSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	file := models.RatesFile{Pairs: make(map[string]models.RatePair)}

	rows, err := r.Pool.Query(ctx, `
		SELECT from_currency, to_currency, rate, updated_at, source
		FROM exchange_rates;
	`)
	if err != nil {
		return nil, dbError("query exchange rates", err)
	}
	defer rows.Close()

	for rows.Next() {
		var from, to string
		var pair models.RatePair
		if err := rows.Scan(&from, &to, &pair.Rate, &pair.UpdatedAt.Time, &pair.Source); err != nil {
			return nil, dbError("scan exchange rate", err)
		}
		file.Pairs[string(domain.NewPairKey(from, to))] = pair
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("iterate exchange rates", err)
	}

	var lastRefresh *time.Time
	err = r.Pool.QueryRow(ctx, `SELECT last_refresh FROM rate_refreshes WHERE id = 1;`).Scan(&lastRefresh)
	if err != nil && err != pgx.ErrNoRows {
		return nil, dbError("query last refresh", err)
	}
	if lastRefresh != nil {
		file.LastRefresh = models.NewTimestamp(*lastRefresh)
	}

	return mapping.ToDomainRateSnapshot(file), nil
}

func (r *PgxRateRepository) SaveSnapshot(ctx context.Context, rates []domain.ExchangeRate, refreshedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	for _, rate := range rates {
		pair := mapping.ToModelRatePair(rate)
		batch.Queue(`
			INSERT INTO exchange_rates (from_currency, to_currency, rate, updated_at, source)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (from_currency, to_currency) DO UPDATE SET
				rate = EXCLUDED.rate,
				updated_at = EXCLUDED.updated_at,
				source = EXCLUDED.source;
		`, domain.NormalizeCode(rate.FromCurrencyCode), domain.NormalizeCode(rate.ToCurrencyCode),
			pair.Rate, pair.UpdatedAt.Time, pair.Source)
	}
	batch.Queue(`
		INSERT INTO rate_refreshes (id, last_refresh) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET last_refresh = GREATEST(rate_refreshes.last_refresh, EXCLUDED.last_refresh);
	`, refreshedAt.UTC())

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return dbError("save exchange rates", err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxRateRepository) AppendHistory(ctx context.Context, records []domain.RateHistoryRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, rec := range records {
		m := mapping.ToModelHistoryRecord(rec)
		batch.Queue(`
			INSERT INTO exchange_rate_history (id, from_currency, to_currency, rate, observed_at, source)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING;
		`, m.ID, m.FromCurrency, m.ToCurrency, m.Rate, m.Timestamp.Time, m.Source)
	}
	if err := r.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return dbError("append rate history", err)
	}
	return nil
}
