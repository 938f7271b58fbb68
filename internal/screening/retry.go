package screening

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"time"

	"screener-backend/internal/llm"
	"screener-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

// retryingLLM makes exactly one additional attempt after a transient failure.
// Persistent failures still surface to the caller's fallback path.
type retryingLLM struct {
	base      llm.Client
	requestID string
}

func newRetryingLLM(base llm.Client, requestID string) llm.Client {
	if base == nil {
		return nil
	}
	return retryingLLM{
		base:      base,
		requestID: requestID,
	}
}

func (r retryingLLM) Screen(ctx context.Context, input llm.Input) (json.RawMessage, error) {
	resp, err := r.base.Screen(ctx, input)
	if err == nil || !shouldRetry(err) {
		return resp, err
	}

	telemetry.Warn("llm.retry", map[string]any{
		"request_id": r.requestID,
		"error":      err.Error(),
	})
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return r.base.Screen(ctx, input)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
