package screening

import (
	"context"
	"time"

	"screener-backend/internal/llm"
	"screener-backend/internal/shared/metrics"
	"screener-backend/internal/shared/telemetry"
)

const defaultTimeout = 60 * time.Second

// Screener invokes the scoring oracle and always produces a Result: a
// normalized one on success, the degraded fallback on any failure.
type Screener struct {
	LLM     llm.Client
	Model   string
	Timeout time.Duration
}

// Screen evaluates one applicant's documents. The oracle call is bounded by
// the configured timeout and retried once on transient errors; callers never
// need to branch on a missing result.
func (s *Screener) Screen(ctx context.Context, requestID string, input llm.Input) Result {
	metrics.IncScreeningStarted()
	start := time.Now()

	result := s.screen(ctx, requestID, input)
	result.ScreenedAt = time.Now().UTC()
	result.AIModelUsed = s.Model

	metrics.ObserveScreeningDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.IncScreeningCompleted()
	return result
}

func (s *Screener) screen(ctx context.Context, requestID string, input llm.Input) Result {
	if s.LLM == nil {
		return s.degraded(requestID, llm.ErrNotConfigured)
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := newRetryingLLM(s.LLM, requestID)
	raw, err := client.Screen(callCtx, input)
	if err != nil {
		return s.degraded(requestID, err)
	}

	result, err := Normalize(raw)
	if err != nil {
		return s.degraded(requestID, err)
	}
	return result
}

func (s *Screener) degraded(requestID string, cause error) Result {
	metrics.IncScreeningFailed()
	telemetry.Error("screening.fallback", map[string]any{
		"request_id": requestID,
		"model":      s.Model,
		"error":      cause.Error(),
	})
	return Fallback(cause)
}
