package gemini

import (
	"context"
	"errors"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
	"github.com/Piyush-6177/Exam-Pilot/internal/infrastructure/resilience"
)

// generator is the single-attempt generation contract the invoker drives.
// Satisfied by *Client; stubbed in tests.
type generator interface {
	Generate(ctx context.Context, model domain.ModelConfig, req domain.ModelRequest) (string, error)
}

// Invoker runs one model call through the resilience executor: per-attempt
// timeout, bounded retries with exponential backoff on transient failures,
// immediate abort on fatal ones. Cross-model fallback lives one layer above,
// in the analysis orchestrator.
type Invoker struct {
	gen      generator
	executor *resilience.Executor
}

func NewInvoker(client *Client, executor *resilience.Executor) *Invoker {
	return &Invoker{gen: client, executor: executor}
}

func newInvokerForTest(gen generator, executor *resilience.Executor) *Invoker {
	return &Invoker{gen: gen, executor: executor}
}

func (i *Invoker) MaxAttempts() int {
	return i.executor.MaxAttempts()
}

// Invoke performs the bounded-retry invocation of a single model and returns
// the raw response text. onRetry, when non-nil, is told about each upcoming
// retry before its backoff wait.
func (i *Invoker) Invoke(
	ctx context.Context,
	model domain.ModelConfig,
	req domain.ModelRequest,
	onRetry func(nextAttempt, maxAttempts int),
) (string, error) {
	var raw string
	err := i.executor.Execute(ctx, model.ID, func(attemptCtx context.Context) error {
		text, err := i.gen.Generate(attemptCtx, model, req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && attemptCtx.Err() != nil {
				// The attempt clock fired while the provider call was still
				// outstanding; classify it like any other timeout.
				err = ClassifyModelError("generate", err)
			}
			return err
		}
		raw = text
		return nil
	}, classifyForRetry, onRetry)
	if err != nil {
		return "", err
	}
	return raw, nil
}

func classifyForRetry(err error) resilience.ErrorClassification {
	if errors.Is(err, context.Canceled) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	return resilience.ErrorClassification{
		Retryable:     IsTransient(err),
		RecordFailure: true,
	}
}
