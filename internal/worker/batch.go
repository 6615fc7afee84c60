package worker

import (
	"context"
	"fmt"

	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"upc/internal/validator"
	"upc/pkg/domain"
	"upc/pkg/logger"
)

// BatchWorker is a River worker that completes queued validation batches.
// Evaluation is local and O(1) per candidate, so the worker is a plain loop
// with no throttling; concurrency is bounded by the queue configuration.
type BatchWorker struct {
	river.WorkerDefaults[validator.BatchJobArgs]

	validator validator.Validator
}

// NewBatchWorker constructs a BatchWorker backed by the given validator.
func NewBatchWorker(v validator.Validator) *BatchWorker {
	return &BatchWorker{validator: v}
}

// Work evaluates every pending row of the job's batch and marks it completed.
// CompleteBatch is idempotent, so a retried job only picks up rows a previous
// attempt left pending.
func (w *BatchWorker) Work(ctx context.Context, job *river.Job[validator.BatchJobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.String("batchID", job.Args.BatchID.String()))

	if err := w.validator.CompleteBatch(ctx, domain.BatchID(job.Args.BatchID)); err != nil {
		logger.Error(ctx, "error completing batch", zap.Error(err))

		return fmt.Errorf("could not complete batch: %w", err)
	}

	logger.Info(ctx, "batch validated successfully")

	return nil
}
