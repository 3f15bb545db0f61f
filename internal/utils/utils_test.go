package utils

import (
	"testing"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))

	_, err = HashPassword("abc")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestJWTRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateJWT("user-1", "secret", time.Hour, "valutatrade-hub")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseAndValidateJWT(token, "secret", "valutatrade-hub")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAndValidateJWT(token, "secret", "someone-else")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	expired, _, err := GenerateJWT("user-1", "secret", -time.Minute, "")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestCurrencyFormatting(t *testing.T) {
	assert.Equal(t, 2, CurrencyPrecision("usd"))
	assert.Equal(t, 8, CurrencyPrecision("BTC"))
	assert.Equal(t, "12.35", FormatWithCurrencyPrecision(decimal.RequireFromString("12.3456"), "USD"))
	assert.Equal(t, "0.01000000", FormatWithCurrencyPrecision(decimal.RequireFromString("0.01"), "BTC"))
	assert.Equal(t, "$1,000.00", FormatMoney(decimal.NewFromInt(1000), "USD"))
	assert.Equal(t, "0.50000000 ETH", FormatMoney(decimal.RequireFromString("0.5"), "ETH"))
}

func TestNewULID_Sortable(t *testing.T) {
	at := time.Date(2025, 10, 9, 0, 0, 0, 0, time.UTC)
	a := NewULID(at)
	b := NewULID(at)
	assert.Len(t, a, 26)
	assert.Less(t, a, b)
	assert.Less(t, b, NewULID(at.Add(time.Second)))
}
