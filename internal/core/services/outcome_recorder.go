package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/SscSPs/valutatrade_hub/internal/middleware"
	"github.com/SscSPs/valutatrade_hub/internal/utils"
)

// NoopOutcomeRecorder drops every outcome.
type NoopOutcomeRecorder struct{}

func (NoopOutcomeRecorder) Record(context.Context, domain.Outcome) {}

// SlogOutcomeRecorder writes one action line per outcome, e.g.
// BUY user_id=... result=OK currency=BTC amount=0.01.
type SlogOutcomeRecorder struct {
	logger *slog.Logger
}

// NewSlogOutcomeRecorder logs through logger, or through the request logger when nil.
func NewSlogOutcomeRecorder(logger *slog.Logger) *SlogOutcomeRecorder {
	return &SlogOutcomeRecorder{logger: logger}
}

func (r *SlogOutcomeRecorder) Record(ctx context.Context, o domain.Outcome) {
	logger := r.logger
	if logger == nil {
		logger = middleware.GetLoggerFromCtx(ctx)
	}

	attrs := make([]any, 0, len(o.Attributes)+4)
	attrs = append(attrs, slog.String("user_id", o.SubjectID))
	if o.Success {
		attrs = append(attrs, slog.String("result", "OK"))
	} else {
		attrs = append(attrs, slog.String("result", "ERROR"), slog.String("type", o.FailureKind))
		if o.Err != nil {
			attrs = append(attrs, slog.String("error", o.Err.Error()))
		}
	}
	for k, v := range o.Attributes {
		attrs = append(attrs, slog.String(k, v))
	}

	if o.Success {
		logger.InfoContext(ctx, o.Action, attrs...)
		return
	}
	logger.WarnContext(ctx, o.Action, attrs...)
}

// PosthogOutcomeRecorder forwards outcomes as analytics events.
type PosthogOutcomeRecorder struct {
	client *utils.PosthogClientWrapper
}

func NewPosthogOutcomeRecorder(client *utils.PosthogClientWrapper) *PosthogOutcomeRecorder {
	return &PosthogOutcomeRecorder{client: client}
}

func (r *PosthogOutcomeRecorder) Record(ctx context.Context, o domain.Outcome) {
	if !r.client.IsInitialized() {
		return
	}
	props := map[string]any{"success": o.Success}
	if !o.Success {
		props["failure_kind"] = o.FailureKind
	}
	for k, v := range o.Attributes {
		props[k] = v
	}
	distinctID := o.SubjectID
	if distinctID == "" {
		distinctID = "anonymous"
	}
	r.client.Enqueue(distinctID, o.Action, props)
}

// MultiOutcomeRecorder fans an outcome out to several recorders.
type MultiOutcomeRecorder []portssvc.OutcomeRecorder

func (m MultiOutcomeRecorder) Record(ctx context.Context, o domain.Outcome) {
	for _, r := range m {
		if r != nil {
			r.Record(ctx, o)
		}
	}
}

var (
	_ portssvc.OutcomeRecorder = NoopOutcomeRecorder{}
	_ portssvc.OutcomeRecorder = (*SlogOutcomeRecorder)(nil)
	_ portssvc.OutcomeRecorder = (*PosthogOutcomeRecorder)(nil)
	_ portssvc.OutcomeRecorder = MultiOutcomeRecorder(nil)
)
