package domain

import (
	"errors"
	"fmt"
)

// Closed error taxonomy of the pipeline. Every failure is classified at the
// failure site into one of these kinds; nothing downstream re-parses message
// text.
var (
	ErrMissingInput         = errors.New("missing input")
	ErrInvalidInput         = errors.New("invalid input")
	ErrExtraction           = errors.New("text extraction failed")
	ErrTemporary            = errors.New("temporary failure")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrQuotaExhausted       = errors.New("quota exhausted")
	ErrModelTimeout         = errors.New("model call timed out")
	ErrBadModelRequest      = errors.New("model rejected the request")
	ErrMalformedResponse    = errors.New("malformed model response")
	ErrAllModelsUnavailable = errors.New("all models unavailable")
	ErrJobNotFound          = errors.New("analysis job not found")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// InvalidDocumentError is raised when either gate rejects the content or the
// model emits its rejection sentinel. It stays structured all the way to the
// HTTP layer so the client can render a dedicated affordance.
type InvalidDocumentError struct {
	// DetectedType is the human-readable label of what the document appears
	// to be ("Train Ticket", "Receipt"). Empty when unknown.
	DetectedType string
}

func (e *InvalidDocumentError) Error() string {
	if e.DetectedType == "" {
		return "document is not academic material"
	}
	return fmt.Sprintf("document is not academic material (detected: %s)", e.DetectedType)
}

// AsInvalidDocument unwraps err into an InvalidDocumentError if it is one.
func AsInvalidDocument(err error) (*InvalidDocumentError, bool) {
	var invalid *InvalidDocumentError
	if errors.As(err, &invalid) {
		return invalid, true
	}
	return nil, false
}

// ErrorKind returns a stable machine-readable tag for a classified error,
// used in job snapshots and metric labels.
func ErrorKind(err error) string {
	if _, ok := AsInvalidDocument(err); ok {
		return "invalid_document"
	}
	switch {
	case IsKind(err, ErrMissingInput):
		return "missing_input"
	case IsKind(err, ErrInvalidInput):
		return "invalid_input"
	case IsKind(err, ErrUnauthorized):
		return "unauthorized"
	case IsKind(err, ErrQuotaExhausted):
		return "quota_exhausted"
	case IsKind(err, ErrModelTimeout):
		return "model_timeout"
	case IsKind(err, ErrBadModelRequest):
		return "bad_model_request"
	case IsKind(err, ErrMalformedResponse):
		return "malformed_response"
	case IsKind(err, ErrAllModelsUnavailable):
		return "all_models_unavailable"
	case IsKind(err, ErrTemporary):
		return "temporary"
	case IsKind(err, ErrExtraction):
		return "extraction_failed"
	case IsKind(err, ErrJobNotFound):
		return "job_not_found"
	default:
		return "internal"
	}
}

// UserMessage is the single funnel mapping every classified error onto one of
// a small set of user-facing strings.
func UserMessage(err error) string {
	if invalid, ok := AsInvalidDocument(err); ok {
		if invalid.DetectedType != "" {
			return fmt.Sprintf(
				"This doesn't look like academic material (detected: %s). Please upload a syllabus and past exam papers.",
				invalid.DetectedType,
			)
		}
		return "These documents don't look like academic material. Please upload a syllabus and past exam papers."
	}
	switch {
	case IsKind(err, ErrMissingInput):
		return "Both a syllabus and a past papers file are required."
	case IsKind(err, ErrUnauthorized):
		return "The configured API credential was rejected. Please check the service configuration."
	case IsKind(err, ErrQuotaExhausted):
		return "The analysis quota has been exhausted. Please try again later."
	case IsKind(err, ErrModelTimeout):
		return "The analysis took too long and was stopped. Please try again."
	case IsKind(err, ErrBadModelRequest):
		return "The analysis request was rejected. Please try different files."
	case IsKind(err, ErrMalformedResponse):
		return "The analysis produced an unreadable answer. Please try again."
	case IsKind(err, ErrAllModelsUnavailable), IsKind(err, ErrTemporary):
		return "All analysis models are currently busy. Please try again in a few minutes."
	default:
		return "The analysis failed unexpectedly. Please try again."
	}
}
