package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
	"github.com/SscSPs/valutatrade_hub/internal/models"
	"github.com/SscSPs/valutatrade_hub/internal/utils/mapping"
)

// FileRateRepository keeps the rate snapshot in one JSON file and the
// append-only history in another.
type FileRateRepository struct {
	snapshot *jsonFile
	history  *jsonFile
}

func newFileRateRepository(snapshotPath, historyPath string) *FileRateRepository {
	return &FileRateRepository{
		snapshot: newJSONFile(snapshotPath),
		history:  newJSONFile(historyPath),
	}
}

var _ portsrepo.RateRepositoryFacade = (*FileRateRepository)(nil)

func (r *FileRateRepository) LoadSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	r.snapshot.mu.Lock()
	defer r.snapshot.mu.Unlock()
	return r.loadLocked()
}

func (r *FileRateRepository) SaveSnapshot(ctx context.Context, rates []domain.ExchangeRate, refreshedAt time.Time) error {
	r.snapshot.mu.Lock()
	defer r.snapshot.mu.Unlock()

	current, err := r.loadLocked()
	if err != nil {
		return err
	}
	current.Merge(rates, refreshedAt.UTC())
	return r.snapshot.write(mapping.ToModelRatesFile(current))
}

func (r *FileRateRepository) AppendHistory(ctx context.Context, records []domain.RateHistoryRecord) error {
	if len(records) == 0 {
		return nil
	}
	r.history.mu.Lock()
	defer r.history.mu.Unlock()

	var history []models.ExchangeRateRecord
	if err := r.history.read(&history); err != nil {
		return err
	}
	for _, rec := range records {
		history = append(history, mapping.ToModelHistoryRecord(rec))
	}
	return r.history.write(history)
}

// loadLocked reads either the current {"pairs": ..., "last_refresh": ...}
// layout or the older flat layout where pair keys sit at the top level next to
// optional "source" and "last_refresh" entries.
func (r *FileRateRepository) loadLocked() (*domain.RateSnapshot, error) {
	var raw map[string]json.RawMessage
	if err := r.snapshot.read(&raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return domain.NewRateSnapshot(), nil
	}

	if _, ok := raw["pairs"]; ok {
		var file models.RatesFile
		if err := remarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("%w: decoding %s: %v", apperrors.ErrPersistence, r.snapshot.path, err)
		}
		return mapping.ToDomainRateSnapshot(file), nil
	}

	file := models.RatesFile{Pairs: make(map[string]models.RatePair)}
	var legacySource string
	if src, ok := raw["source"]; ok {
		_ = json.Unmarshal(src, &legacySource)
	}
	if lr, ok := raw["last_refresh"]; ok {
		_ = json.Unmarshal(lr, &file.LastRefresh)
	}
	for key, value := range raw {
		from, to, ok := domain.PairKey(key).Split()
		if !ok || !domain.IsValidCode(from) || !domain.IsValidCode(to) {
			continue
		}
		var pair models.RatePair
		if err := json.Unmarshal(value, &pair); err != nil {
			continue
		}
		if pair.Source == "" {
			pair.Source = legacySource
		}
		file.Pairs[key] = pair
	}
	return mapping.ToDomainRateSnapshot(file), nil
}

func remarshal(raw map[string]json.RawMessage, out any) error {
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
