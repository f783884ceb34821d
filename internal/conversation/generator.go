package conversation

import (
	"context"
	"errors"
	"fmt"
)

// Generator turns a prompt into reply text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FailureReason classifies why a generation attempt produced no reply.
type FailureReason string

const (
	FailureUnavailable   FailureReason = "unavailable"
	FailureRequest       FailureReason = "request"
	FailureEmptyResponse FailureReason = "empty_response"
	FailureTimeout       FailureReason = "timeout"
)

// GenerationError is returned by generators and consumed by Service to pick the fallback reply.
type GenerationError struct {
	Reason FailureReason
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generation failed: %s", e.Reason)
	}
	return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ReasonOf extracts the failure reason from err, classifying context
// deadline errors as timeouts and anything unrecognised as a request failure.
func ReasonOf(err error) FailureReason {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Reason
	}
	return FailureRequest
}

// UnavailableGenerator is installed when no backend could be configured;
// every call fails so the service answers with FallbackReply.
type UnavailableGenerator struct {
	Cause error
}

func (u UnavailableGenerator) Generate(context.Context, string) (string, error) {
	return "", &GenerationError{Reason: FailureUnavailable, Err: u.Cause}
}
