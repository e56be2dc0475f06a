package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

// ClassifyModelError maps a raw provider error onto the domain taxonomy.
// The provider's error shapes are not contractually stable, so this is the
// one and only place that inspects their message text. Fatal substrings are
// checked before transient ones: a message naming both the quota and a 429
// status is a quota failure, not a rate limit to wait out.
func ClassifyModelError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.ErrModelTimeout, operation, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"),
		strings.Contains(msg, "deadline"):
		return domain.WrapError(domain.ErrModelTimeout, operation, err)
	case strings.Contains(msg, "quota"):
		return domain.WrapError(domain.ErrQuotaExhausted, operation, err)
	case strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "api key"):
		return domain.WrapError(domain.ErrUnauthorized, operation, err)
	case strings.Contains(msg, "invalid"):
		return domain.WrapError(domain.ErrBadModelRequest, operation, err)
	case strings.Contains(msg, "503"),
		strings.Contains(msg, "500"),
		strings.Contains(msg, "429"),
		strings.Contains(msg, "high demand"),
		strings.Contains(msg, "overloaded"),
		strings.Contains(msg, "unavailable"):
		return domain.WrapError(domain.ErrTemporary, operation, err)
	default:
		// Unknown failure modes are assumed non-recoverable.
		return err
	}
}

// IsTransient reports whether a classified error is eligible for retry and
// model fallback.
func IsTransient(err error) bool {
	return domain.IsKind(err, domain.ErrTemporary)
}
