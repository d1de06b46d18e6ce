// Package operation wraps service operations with tracing, metrics, logging,
// panic recovery and a database transaction.
package operation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/metrics"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Runner carries the collaborators every operation of one service shares.
type Runner struct {
	service string
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

func NewRunner(service string, logger *slog.Logger, m metrics.OperationMetrics, tracer trace.Tracer, db *bun.DB) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.NoOpMetrics{}
	}
	return &Runner{service: service, logger: logger, metrics: m, tracer: tracer, db: db}
}

func (r *Runner) Logger() *slog.Logger { return r.logger }

// TxFunc is the body of an operation. A non-nil error is an infrastructure
// failure; domain failures travel in the result.
type TxFunc[S any] func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error)

// errDomainFailure rolls back a transaction whose body returned a failure result.
var errDomainFailure = errors.New("domain failure")

// Run executes fn inside a transaction with full telemetry and flattens the
// result into the (value, error) pair handlers expect.
func Run[S any](r *Runner, ctx context.Context, name, identifier string, fn TxFunc[S]) (S, error) {
	var zero S

	result, err := withTelemetry(r, ctx, name, identifier, func(ctx context.Context) (results.OperationResult[S, error], error) {
		return runInTx(r, ctx, fn)
	})
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if result.Success == nil {
		return zero, nil
	}
	return *result.Success, nil
}

func withTelemetry[S any](
	r *Runner,
	ctx context.Context,
	operationName string,
	identifier string,
	op func(ctx context.Context) (results.OperationResult[S, error], error),
) (result results.OperationResult[S, error], err error) {
	var span trace.Span
	if r.tracer != nil {
		ctx, span = r.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("service", r.service),
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	r.metrics.RecordOperationAttempt(ctx, operationName, r.service)

	startTime := time.Now()
	defer func() {
		r.metrics.RecordOperationDuration(ctx, operationName, r.service, time.Since(startTime))
	}()

	r.logger.InfoContext(ctx, "Operation triggered",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", operationName),
		attr.String("identifier", identifier),
	)

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, rec)
			r.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			r.metrics.RecordOperationFailure(ctx, operationName, r.service)
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
			result = results.OperationResult[S, error]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		r.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		r.metrics.RecordOperationFailure(ctx, operationName, r.service)
		span.RecordError(wrappedErr)
		span.SetStatus(codes.Error, err.Error())
		return result, wrappedErr
	}

	if result.IsFailure() {
		r.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", (*result.Failure).Error()),
		)
	} else {
		r.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	r.metrics.RecordOperationSuccess(ctx, operationName, r.service)
	return result, nil
}

// runInTx runs fn in a transaction when a database is configured. A failure
// result rolls the transaction back so partial writes never commit.
func runInTx[S any](r *Runner, ctx context.Context, fn TxFunc[S]) (results.OperationResult[S, error], error) {
	if r.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, error]
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		if txErr != nil {
			return txErr
		}
		if result.IsFailure() {
			return errDomainFailure
		}
		return nil
	})
	if errors.Is(err, errDomainFailure) {
		return result, nil
	}
	return result, err
}

// Success is shorthand for returning a successful result from a TxFunc.
func Success[S any](v S) (results.OperationResult[S, error], error) {
	return results.SuccessResult[S, error](v), nil
}

// Failure is shorthand for returning a domain failure from a TxFunc.
func Failure[S any](err error) (results.OperationResult[S, error], error) {
	return results.FailureResult[S, error](err), nil
}
