package services

import (
	"context"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
)

// TokenSvcFacade issues and checks the access tokens used by the API and the CLI session.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ParseAccessToken returns the user ID carried by a valid token.
	ParseAccessToken(ctx context.Context, token string) (string, error)
}
