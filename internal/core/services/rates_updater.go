package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/SscSPs/valutatrade_hub/internal/utils"
	"golang.org/x/sync/errgroup"
)

// UpdateRunner runs one refresh cycle.
type UpdateRunner interface {
	RunUpdate(ctx context.Context, source string) (*domain.RefreshReport, error)
}

// RatesUpdater pulls rates from every configured source and stores them.
type RatesUpdater struct {
	BaseService
	sources  []portssvc.RateSource
	rateRepo portsrepo.RateRepositoryFacade
	recorder portssvc.OutcomeRecorder
	now      func() time.Time
}

// RatesUpdaterOption is a functional option for configuring the updater
type RatesUpdaterOption func(*RatesUpdater)

// WithUpdaterRecorder reports each cycle as an UPDATE_RATES outcome.
func WithUpdaterRecorder(recorder portssvc.OutcomeRecorder) RatesUpdaterOption {
	return func(u *RatesUpdater) {
		u.recorder = recorder
	}
}

// WithUpdaterClock replaces time.Now, mainly for tests.
func WithUpdaterClock(now func() time.Time) RatesUpdaterOption {
	return func(u *RatesUpdater) {
		u.now = now
	}
}

func NewRatesUpdater(rateRepo portsrepo.RateRepositoryFacade, sources []portssvc.RateSource, options ...RatesUpdaterOption) *RatesUpdater {
	u := &RatesUpdater{
		sources:  sources,
		rateRepo: rateRepo,
		recorder: NoopOutcomeRecorder{},
		now:      time.Now,
	}
	for _, option := range options {
		option(u)
	}
	return u
}

var _ UpdateRunner = (*RatesUpdater)(nil)

// SourceNames lists the configured sources.
func (u *RatesUpdater) SourceNames() []string {
	names := make([]string, 0, len(u.sources))
	for _, src := range u.sources {
		names = append(names, src.Name())
	}
	return names
}

// RunUpdate fetches from source (or from all sources when empty) concurrently.
// Failing sources are logged and skipped; the cycle fails only when every
// selected source failed or the store could not be written.
func (u *RatesUpdater) RunUpdate(ctx context.Context, source string) (*domain.RefreshReport, error) {
	selected, err := u.selectSources(source)
	if err != nil {
		u.record(ctx, source, nil, err)
		return nil, err
	}

	u.LogInfo(ctx, "Starting rates update", slog.Int("sources", len(selected)))

	results := make([]domain.SourceResult, len(selected))
	fetched := make([][]domain.ExchangeRate, len(selected))

	var g errgroup.Group
	for i, src := range selected {
		g.Go(func() error {
			rates, err := src.FetchRates(ctx)
			results[i] = domain.SourceResult{Source: src.Name(), Fetched: len(rates), Err: err}
			if err == nil {
				fetched[i] = rates
			}
			return nil
		})
	}
	_ = g.Wait()

	report := &domain.RefreshReport{Results: results, RefreshedAt: u.now().UTC()}

	var all []domain.ExchangeRate
	var errs []error
	for i, res := range results {
		if res.Err != nil {
			u.LogError(ctx, res.Err, "Rate source failed", slog.String("source", res.Source))
			errs = append(errs, fmt.Errorf("%s: %w", res.Source, res.Err))
			continue
		}
		u.LogInfo(ctx, "Rate source fetched", slog.String("source", res.Source), slog.Int("rates", res.Fetched))
		all = append(all, fetched[i]...)
	}

	if len(errs) == len(selected) {
		err := errors.Join(errs...)
		u.record(ctx, source, report, err)
		return report, err
	}

	if err := u.rateRepo.SaveSnapshot(ctx, all, report.RefreshedAt); err != nil {
		err = wrapPersistence(err, "saving rate snapshot")
		u.LogError(ctx, err, "Failed to save rate snapshot")
		u.record(ctx, source, report, err)
		return report, err
	}
	report.Saved = len(all)

	if err := u.rateRepo.AppendHistory(ctx, historyRecords(all, report.RefreshedAt)); err != nil {
		err = wrapPersistence(err, "appending rate history")
		u.LogError(ctx, err, "Failed to append rate history")
		u.record(ctx, source, report, err)
		return report, err
	}

	u.LogInfo(ctx, "Rates update finished",
		slog.Int("saved", report.Saved),
		slog.Int("failed_sources", len(errs)))
	u.record(ctx, source, report, nil)
	return report, nil
}

func (u *RatesUpdater) selectSources(name string) ([]portssvc.RateSource, error) {
	if len(u.sources) == 0 {
		return nil, fmt.Errorf("%w: no rate sources configured", apperrors.ErrInvalidOperation)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return u.sources, nil
	}
	for _, src := range u.sources {
		if strings.EqualFold(src.Name(), name) {
			return []portssvc.RateSource{src}, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown rate source '%s' (available: %s)",
		apperrors.ErrValidation, name, strings.Join(u.SourceNames(), ", "))
}

func (u *RatesUpdater) record(ctx context.Context, source string, report *domain.RefreshReport, err error) {
	if source == "" {
		source = "all"
	}
	o := domain.Outcome{
		Action:     domain.ActionRefreshRates,
		SubjectID:  "system",
		Success:    err == nil,
		Err:        err,
		Attributes: map[string]string{"source": source},
	}
	if err != nil {
		o.FailureKind = apperrors.Kind(err)
	}
	if report != nil {
		o.Attributes["saved"] = fmt.Sprint(report.Saved)
	}
	u.recorder.Record(ctx, o)
}

// historyRecords stamps rates without an observation time with refreshedAt.
func historyRecords(rates []domain.ExchangeRate, refreshedAt time.Time) []domain.RateHistoryRecord {
	records := make([]domain.RateHistoryRecord, 0, len(rates))
	for _, r := range rates {
		if r.ObservedAt.IsZero() {
			r.ObservedAt = refreshedAt
		}
		records = append(records, domain.RateHistoryRecord{
			ID:           string(r.Pair()) + "_" + utils.NewULID(r.ObservedAt),
			ExchangeRate: r,
		})
	}
	return records
}

func wrapPersistence(err error, action string) error {
	if errors.Is(err, apperrors.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", apperrors.ErrPersistence, action, err)
}
