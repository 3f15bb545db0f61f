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
	"github.com/SscSPs/valutatrade_hub/internal/dto"
	"github.com/SscSPs/valutatrade_hub/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type userService struct {
	BaseService
	userRepo      portsrepo.UserRepositoryFacade
	portfolioRepo portsrepo.PortfolioRepositoryFacade
	baseCurrency  string
	signupBonus   decimal.Decimal
	recorder      portssvc.OutcomeRecorder
	now           func() time.Time
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithSignupBonus sets the amount of base currency credited at registration.
func WithSignupBonus(bonus decimal.Decimal) UserServiceOption {
	return func(s *userService) {
		s.signupBonus = bonus
	}
}

// WithUserRecorder reports registrations and logins to recorder.
func WithUserRecorder(recorder portssvc.OutcomeRecorder) UserServiceOption {
	return func(s *userService) {
		s.recorder = recorder
	}
}

// WithUserClock replaces time.Now, mainly for tests.
func WithUserClock(now func() time.Time) UserServiceOption {
	return func(s *userService) {
		s.now = now
	}
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, portfolioRepo portsrepo.PortfolioRepositoryFacade, baseCurrency string, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo:      userRepo,
		portfolioRepo: portfolioRepo,
		baseCurrency:  domain.NormalizeCode(baseCurrency),
		signupBonus:   decimal.NewFromInt(1000),
		recorder:      NoopOutcomeRecorder{},
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

// RegisterUser creates the user and a portfolio holding the signup bonus in
// the base currency.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	user, err := s.register(ctx, username, req.Password)

	o := domain.Outcome{Action: domain.ActionRegister, Success: err == nil, Err: err,
		Attributes: map[string]string{"username": username}}
	if user != nil {
		o.SubjectID = user.UserID
	}
	if err != nil {
		o.FailureKind = apperrors.Kind(err)
	}
	s.recorder.Record(ctx, o)
	return user, err
}

func (s *userService) register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, apperrors.NewValidationError("username must not be empty")
	}

	existing, err := s.userRepo.FindUserByUsername(ctx, username)
	switch {
	case err == nil && existing != nil:
		return nil, fmt.Errorf("%w: username '%s' is already taken", apperrors.ErrDuplicate, username)
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("checking username: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	portfolio := domain.NewPortfolio(user.UserID)
	if s.signupBonus.IsPositive() {
		err = portfolio.Deposit(s.baseCurrency, s.signupBonus)
	} else {
		err = portfolio.OpenWallet(s.baseCurrency)
	}
	if err != nil {
		return nil, fmt.Errorf("funding new portfolio: %w", err)
	}
	portfolio.Touch(now)
	if err := s.portfolioRepo.SavePortfolio(ctx, portfolio); err != nil {
		s.LogError(ctx, err, "User saved without portfolio", slog.String("user_id", user.UserID))
		return nil, wrapPersistence(err, "saving portfolio")
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// AuthenticateUser reports unknown users and wrong passwords alike as ErrUnauthorized.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		err = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	case err != nil:
		err = fmt.Errorf("finding user: %w", err)
	case !utils.CheckPasswordHash(password, user.PasswordHash):
		err = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}

	o := domain.Outcome{Action: domain.ActionLogin, Success: err == nil, Err: err,
		Attributes: map[string]string{"username": username}}
	if err != nil {
		o.FailureKind = apperrors.Kind(err)
		s.recorder.Record(ctx, o)
		return nil, err
	}
	o.SubjectID = user.UserID
	s.recorder.Record(ctx, o)
	return user, nil
}
