package storage

import (
	"context"
	"time"

	"upc/pkg/domain"
)

// ValidationUpdates describes a set of optional fields that can be applied to
// an existing validation record during an update. Only non-nil fields are set.
type ValidationUpdates struct {
	// Status is the new status to set for the record.
	Status domain.ValidationStatus
	// Result, when provided, replaces the stored evaluation payload.
	Result *domain.ValidationResult
	// LastError, when provided, sets the last error text. An empty string value
	// indicates the error should be cleared (set to NULL).
	LastError *string
}

// UserValidations groups a page of validation records returned for a user
// together with an optional NextCursor used for pagination.
type UserValidations struct {
	// Validations contains the current page of records.
	Validations []domain.Validation
	// NextCursor points to the timestamp to be used as the cursor for fetching
	// the next page. It is nil when there is no next page.
	NextCursor *time.Time
}

// ValidationStorage defines CRUD and query operations for validation history.
// Implementations should ensure idempotency and proper handling of
// soft-deletes where applicable.
type ValidationStorage interface {
	// StoreValidations inserts one or more records and returns the stored rows
	// as they exist in the database (including generated fields).
	StoreValidations(ctx context.Context, validations ...domain.Validation) ([]domain.Validation, error)
	// UpdateValidationByID updates a single record identified by its ID and
	// returns the updated row. The update ignores soft-deleted rows and sets
	// updated_at automatically. Only provided fields are changed.
	UpdateValidationByID(ctx context.Context, ID domain.ValidationID, updates ValidationUpdates) (*domain.Validation, error)
	// PendingValidationsByBatch returns all pending, non-deleted records that
	// belong to the given batch, oldest first.
	PendingValidationsByBatch(ctx context.Context, batchID domain.BatchID) ([]domain.Validation, error)
	// DeleteValidation performs a soft delete for the given record ID and user
	// ID and returns the deleted record, or nil if it was not found.
	DeleteValidation(ctx context.Context, userID domain.UserID, ID domain.ValidationID) (*domain.Validation, error)
	// UserValidations returns a page of records for a user created before the
	// optional cursor time, limited by the given limit. If status is non-empty,
	// results are filtered to records with the given status.
	UserValidations(ctx context.Context,
		userID domain.UserID,
		status domain.ValidationStatus,
		cursor time.Time,
		limit uint) (UserValidations, error)
	// ValidationByID fetches a record by its ID for the given user, excluding
	// soft-deleted rows. Returns nil when not found.
	ValidationByID(ctx context.Context, userID domain.UserID, ID domain.ValidationID) (*domain.Validation, error)
}
