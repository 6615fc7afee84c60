package validator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"upc/internal/config"
	"upc/internal/engine"
	"upc/pkg/domain"
	"upc/pkg/logger"
	"upc/pkg/metrics"
	"upc/pkg/serrors"
	"upc/pkg/storage"
)

// Options configure how batch jobs are enqueued and how large a batch may be.
// These settings are typically derived from application configuration.
type Options struct {
	// BatchMaxAttempts is the maximum number of attempts the background worker
	// should make when processing a batch job before marking it failed.
	BatchMaxAttempts int
	// BatchUniquePeriod is the lookback window during which a job for the same
	// batch is considered a duplicate.
	BatchUniquePeriod time.Duration
	// MaxBatchSize limits how many candidates a single batch may carry.
	MaxBatchSize int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		BatchMaxAttempts:  cfg.Validator.BatchMaxAttempts,
		BatchUniquePeriod: cfg.Validator.BatchUniquePeriod,
		MaxBatchSize:      cfg.Validator.MaxBatchSize,
	}
}

// validator is the concrete implementation of the Validator interface.
// It runs the evaluation engine and coordinates persistence with the storage
// layer and batch job enqueueing. The engine itself is pure; everything
// stateful lives here.
type validator struct {
	// options holds runtime configuration that affects batching.
	options Options
	// storage is the persistence layer used to store history and manage jobs.
	storage storage.Storage
}

// Check evaluates a single candidate synchronously and stores the completed
// history record. Malformed and unsolvable inputs are not errors: their
// outcome is recorded and returned as data. The error return covers storage
// failures and engine defects only.
func (v validator) Check(ctx context.Context, userID domain.UserID, input string) (*domain.Validation, error) {
	result, err := engine.Evaluate(input)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not evaluate candidate")
	}
	metrics.EvaluationOutcomes.WithLabelValues(string(result.Outcome)).Inc()

	rows, err := v.storage.StoreValidations(ctx, domain.Validation{
		UserID: userID,
		Input:  strings.TrimSpace(input),
		Status: domain.ValidationStatusCompleted,
		Result: result,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store validation: %w", err)
	}

	return &rows[0], nil
}

// CheckBatch stores one pending record per input under a fresh batch ID and
// enqueues a single background job to complete them. The rows and the job are
// created in one transaction so a stored batch always has its job.
func (v validator) CheckBatch(ctx context.Context,
	userID domain.UserID,
	inputs []string) (domain.BatchID, []domain.Validation, error) {
	if len(inputs) == 0 {
		return domain.BatchID{}, nil, serrors.With(serrors.ErrBadRequest, "batch contains no candidates")
	}
	if v.options.MaxBatchSize > 0 && len(inputs) > v.options.MaxBatchSize {
		return domain.BatchID{}, nil, serrors.With(serrors.ErrBadRequest,
			"batch of %d candidates exceeds the limit of %d", len(inputs), v.options.MaxBatchSize)
	}

	batchID := domain.BatchID(uuid.New())
	rows := make([]domain.Validation, 0, len(inputs))
	for _, input := range inputs {
		rows = append(rows, domain.Validation{
			UserID:  userID,
			BatchID: batchID,
			Input:   strings.TrimSpace(input),
			Status:  domain.ValidationStatusPending,
		})
	}

	var stored []domain.Validation
	if err := v.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.StoreValidations(ctx, rows...)
		if err != nil {
			return fmt.Errorf("could not store batch rows: %w", err)
		}
		stored = res

		// the batch ID is fresh, so uniqueness can only dedupe retries of
		// this same transaction
		if _, err := tx.AddJob(ctx, BatchJobArgs{
			BatchID:      uuid.UUID(batchID),
			maxAttempts:  v.options.BatchMaxAttempts,
			uniquePeriod: v.options.BatchUniquePeriod,
		}, nil); err != nil {
			return fmt.Errorf("could not add batch job: %w", err)
		}

		return nil
	}); err != nil {
		return domain.BatchID{}, nil, fmt.Errorf("could not enqueue batch: %w", err)
	}

	return batchID, stored, nil
}

// CompleteBatch evaluates every pending row of a batch and marks it
// completed. It is invoked by the background worker and is idempotent:
// already-completed rows are simply no longer pending.
func (v validator) CompleteBatch(ctx context.Context, batchID domain.BatchID) error {
	pending, err := v.storage.PendingValidationsByBatch(ctx, batchID)
	if err != nil {
		return fmt.Errorf("could not load pending batch rows: %w", err)
	}

	for i := range pending {
		row := &pending[i]

		result, err := engine.Evaluate(row.Input)
		if err != nil {
			return serrors.Wrap(serrors.ErrInternal, err, "could not evaluate candidate %q", row.Input)
		}
		metrics.EvaluationOutcomes.WithLabelValues(string(result.Outcome)).Inc()

		if _, err := v.storage.UpdateValidationByID(ctx, row.ID, storage.ValidationUpdates{
			Status: domain.ValidationStatusCompleted,
			Result: &result,
		}); err != nil {
			return fmt.Errorf("could not complete batch row: %w", err)
		}
	}

	logger.Debug(ctx, "batch completed",
		zap.String("batchID", uuid.UUID(batchID).String()),
		zap.Int("rows", len(pending)))

	return nil
}

// History returns a page of validation records for the given user filtered by
// status. It supports cursor-based pagination using an RFC3339 timestamp
// string and returns the next cursor when more results are available.
func (v validator) History(ctx context.Context,
	userID domain.UserID,
	status domain.ValidationStatus,
	cursor string,
	limit uint) ([]domain.Validation, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := v.storage.UserValidations(ctx, userID, status, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user validations: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Validations, next, nil
}

// Result fetches a single record by ID for the given user. It returns a
// not-found error when no matching record exists.
func (v validator) Result(ctx context.Context, userID domain.UserID, id domain.ValidationID) (*domain.Validation, error) {
	res, err := v.storage.ValidationByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("could not get validation: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "validation not found")
	}

	return res, nil
}

// Delete removes a record belonging to the given user. If the record does not
// exist, a not-found error is returned.
func (v validator) Delete(ctx context.Context, userID domain.UserID, id domain.ValidationID) error {
	res, err := v.storage.DeleteValidation(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("could not delete validation: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "validation not found")
	}

	return nil
}

// New creates a new Validator instance backed by the provided storage and
// configured with the given options.
func New(storage storage.Storage, options Options) Validator {
	return &validator{
		options: options,
		storage: storage,
	}
}
