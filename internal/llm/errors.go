package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is an HTTP 429 from the provider. RetryAfter is zero when
// the provider did not say.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is a reply that is not JSON or does not match the
// request's schema. Content holds the reply for the event log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport failures, 5xx responses and any
// provider error without a more specific type.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a reply cut off at the token limit. Content is
// the partial reply.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrTimeout is a request that missed the deadline set by WithTimeout.
type ErrTimeout struct {
	After time.Duration
	Err   error
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("LLM request timed out after %s", e.After)
}

func (e *ErrTimeout) Unwrap() error { return e.Err }

// Describe explains a provider failure in one sentence for the user, or
// returns "" when err carries no provider error.
func Describe(err error) string {
	var (
		timeout   *ErrTimeout
		limited   *ErrRateLimit
		truncated *ErrMaxTokensExceeded
		invalid   *ErrInvalidResponse
		down      *ErrProviderUnavailable
	)
	switch {
	case errors.As(err, &timeout):
		return fmt.Sprintf("The model did not answer within %s.", timeout.After)
	case errors.As(err, &limited):
		if limited.RetryAfter > 0 {
			return fmt.Sprintf("The provider is rate limiting requests; wait %s.", limited.RetryAfter)
		}
		return "The provider is rate limiting requests."
	case errors.As(err, &truncated):
		return "The reply was cut off before it was complete."
	case errors.As(err, &invalid):
		return "The reply did not have the expected structure."
	case errors.As(err, &down):
		return "The provider could not be reached."
	}
	return ""
}
