package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/SscSPs/valutatrade_hub/internal/core/services"
	"github.com/SscSPs/valutatrade_hub/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogOutcomeRecorder(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	recorder := services.NewSlogOutcomeRecorder(logger)

	recorder.Record(context.Background(), domain.Outcome{
		Action:      domain.ActionBuy,
		SubjectID:   "u1",
		Success:     false,
		FailureKind: "InsufficientFunds",
		Err:         apperrors.ErrInsufficientFunds,
		Attributes:  map[string]string{"currency": "BTC"},
	})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "BUY", line["msg"])
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "u1", line["user_id"])
	assert.Equal(t, "ERROR", line["result"])
	assert.Equal(t, "InsufficientFunds", line["type"])
	assert.Equal(t, "BTC", line["currency"])
}

func TestMultiOutcomeRecorder(t *testing.T) {
	a, b := &captureRecorder{}, &captureRecorder{}
	multi := services.MultiOutcomeRecorder{a, nil, b, services.NewPosthogOutcomeRecorder(&utils.PosthogClientWrapper{})}

	multi.Record(context.Background(), domain.Outcome{Action: domain.ActionLogin, Success: true})

	assert.Equal(t, domain.ActionLogin, a.last().Action)
	assert.Equal(t, domain.ActionLogin, b.last().Action)
}
