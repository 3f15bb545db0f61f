package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Mock PortfolioRepository ---
type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) FindPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error) {
	args := m.Called(ctx, userID)
	var p *domain.Portfolio
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Portfolio)
	}
	return p, args.Error(1)
}

func (m *MockPortfolioRepository) SavePortfolio(ctx context.Context, portfolio *domain.Portfolio) error {
	args := m.Called(ctx, portfolio)
	return args.Error(0)
}

// --- Mock RateRepository ---
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) LoadSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	args := m.Called(ctx)
	var s *domain.RateSnapshot
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.RateSnapshot)
	}
	return s, args.Error(1)
}

func (m *MockRateRepository) SaveSnapshot(ctx context.Context, rates []domain.ExchangeRate, refreshedAt time.Time) error {
	args := m.Called(ctx, rates, refreshedAt)
	return args.Error(0)
}

func (m *MockRateRepository) AppendHistory(ctx context.Context, records []domain.RateHistoryRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// --- In-memory portfolio store ---

// memoryPortfolios keeps deep copies so tests can observe exactly what was saved.
type memoryPortfolios struct {
	mu    sync.Mutex
	items map[string]*domain.Portfolio
	saves int
}

func newMemoryPortfolios(portfolios ...*domain.Portfolio) *memoryPortfolios {
	m := &memoryPortfolios{items: make(map[string]*domain.Portfolio)}
	for _, p := range portfolios {
		m.items[p.UserID()] = p.Clone()
	}
	return m
}

func (m *memoryPortfolios) FindPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("portfolio for user " + userID)
	}
	return p.Clone(), nil
}

func (m *memoryPortfolios) SavePortfolio(ctx context.Context, portfolio *domain.Portfolio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[portfolio.UserID()] = portfolio.Clone()
	m.saves++
	return nil
}

func (m *memoryPortfolios) get(userID string) *domain.Portfolio {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[userID].Clone()
}

func (m *memoryPortfolios) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// --- In-memory rate store ---
type memoryRates struct {
	mu       sync.Mutex
	snapshot *domain.RateSnapshot
	history  []domain.RateHistoryRecord
}

func newMemoryRates(rates ...domain.ExchangeRate) *memoryRates {
	s := domain.NewRateSnapshot()
	for _, r := range rates {
		s.Put(r)
	}
	return &memoryRates{snapshot: s}
}

func (m *memoryRates) LoadSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := domain.NewRateSnapshot()
	c.Merge(m.snapshot.List(), m.snapshot.LastRefresh)
	return c, nil
}

func (m *memoryRates) SaveSnapshot(ctx context.Context, rates []domain.ExchangeRate, refreshedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot.Merge(rates, refreshedAt)
	return nil
}

func (m *memoryRates) AppendHistory(ctx context.Context, records []domain.RateHistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, records...)
	return nil
}

// --- Recording OutcomeRecorder ---
type captureRecorder struct {
	mu       sync.Mutex
	outcomes []domain.Outcome
}

func (r *captureRecorder) Record(ctx context.Context, o domain.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *captureRecorder) last() domain.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.outcomes) == 0 {
		return domain.Outcome{}
	}
	return r.outcomes[len(r.outcomes)-1]
}
