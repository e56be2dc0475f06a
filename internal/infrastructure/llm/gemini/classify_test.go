package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

func TestClassifyModelError(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		kind      error
		transient bool
	}{
		{"unauthorized 401", errors.New("googleapi: Error 401: invalid authentication"), domain.ErrUnauthorized, false},
		{"forbidden 403", errors.New("Error 403: permission denied"), domain.ErrUnauthorized, false},
		{"quota before 429", errors.New("Error 429: resource exhausted, check quota"), domain.ErrQuotaExhausted, false},
		{"plain rate limit", errors.New("Error 429: too many requests"), domain.ErrTemporary, true},
		{"server error", errors.New("Error 500: internal error"), domain.ErrTemporary, true},
		{"unavailable", errors.New("Error 503: service unavailable"), domain.ErrTemporary, true},
		{"high demand phrase", errors.New("the model is experiencing high demand, please retry"), domain.ErrTemporary, true},
		{"overloaded phrase", errors.New("model is overloaded"), domain.ErrTemporary, true},
		{"invalid request", errors.New("invalid argument: bad mime type"), domain.ErrBadModelRequest, false},
		{"timeout text", errors.New("request timeout while generating"), domain.ErrModelTimeout, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyModelError("generate", tc.err)
			if !domain.IsKind(got, tc.kind) {
				t.Fatalf("expected kind %v, got %v", tc.kind, got)
			}
			if IsTransient(got) != tc.transient {
				t.Fatalf("expected transient=%v for %v", tc.transient, got)
			}
		})
	}
}

func TestClassifyModelErrorUnknownIsFatal(t *testing.T) {
	err := errors.New("something entirely new went wrong")
	got := ClassifyModelError("generate", err)
	if IsTransient(got) {
		t.Fatalf("unknown errors must not be retried, got %v", got)
	}
	if !errors.Is(got, err) {
		t.Fatalf("unknown errors must pass through unchanged, got %v", got)
	}
}

func TestClassifyModelErrorContextKinds(t *testing.T) {
	deadline := fmt.Errorf("generate content: %w", context.DeadlineExceeded)
	got := ClassifyModelError("generate", deadline)
	if !domain.IsKind(got, domain.ErrModelTimeout) {
		t.Fatalf("deadline must classify as model timeout, got %v", got)
	}
	if IsTransient(got) {
		t.Fatalf("a timed-out call is fatal, not retryable")
	}

	canceled := fmt.Errorf("generate content: %w", context.Canceled)
	got = ClassifyModelError("generate", canceled)
	if !errors.Is(got, context.Canceled) {
		t.Fatalf("cancellation must pass through, got %v", got)
	}
}
