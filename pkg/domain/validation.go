package domain

import (
	"time"

	"github.com/google/uuid"
)

// ValidationID uniquely identifies a validation record.
// It wraps uuid.UUID to provide type safety at the domain layer.
type ValidationID uuid.UUID

// BatchID groups validations that were submitted together as one batch.
type BatchID uuid.UUID

// ValidationStatus represents the lifecycle state of a validation record.
type ValidationStatus string

const (
	// ValidationStatusPending indicates the record belongs to a batch that has
	// been enqueued but not evaluated yet.
	ValidationStatusPending ValidationStatus = "PENDING"
	// ValidationStatusCompleted indicates the input has been evaluated and a
	// result is available.
	ValidationStatusCompleted ValidationStatus = "COMPLETED"
)

// Outcome is the terminal classification of a UPC candidate.
type Outcome string

const (
	// OutcomeMalformed indicates the input had the wrong length or an illegal
	// character after normalization.
	OutcomeMalformed Outcome = "MALFORMED"
	// OutcomeUnsolvable indicates the input carried two or more unknown
	// markers, making single-digit recovery impossible.
	OutcomeUnsolvable Outcome = "UNSOLVABLE"
	// OutcomeResolved indicates the input was fully known; Valid tells whether
	// the check digit matched.
	OutcomeResolved Outcome = "RESOLVED"
	// OutcomeSolved indicates exactly one unknown marker was recovered through
	// the checksum constraint.
	OutcomeSolved Outcome = "SOLVED"
)

// ValidationResult holds the structured outcome of evaluating one UPC
// candidate: its classification, the (possibly solved) digits, the decoded
// segments, and the error text for malformed or unsolvable inputs.
type ValidationResult struct {
	// Outcome is the terminal classification of the candidate.
	Outcome Outcome `json:"outcome"`

	// Digits is the fully-resolved 12-digit code. Empty for malformed or
	// unsolvable inputs.
	Digits string `json:"digits,omitempty"`
	// Valid reports whether the check digit is consistent with the rest of the
	// code. An invalid checksum is a normal resolved outcome, not an error.
	Valid bool `json:"valid"`
	// SolvedPosition is the 1-based position of the recovered digit when the
	// outcome is SOLVED, zero otherwise.
	SolvedPosition int `json:"solvedPosition,omitempty"`

	// NumberSystem is the number-system digit (position 1).
	NumberSystem string `json:"numberSystem,omitempty"`
	// Manufacturer is the manufacturer segment (positions 2-6).
	Manufacturer string `json:"manufacturer,omitempty"`
	// Product is the product segment (positions 7-11).
	Product string `json:"product,omitempty"`
	// CheckDigit is the check digit (position 12).
	CheckDigit string `json:"checkDigit,omitempty"`
	// Category is the product category resolved from the number-system digit.
	Category string `json:"category,omitempty"`

	// Error describes why the input was malformed or unsolvable.
	Error string `json:"error,omitempty"`
}

// Validation represents a single validation request and its current state.
// It tracks the raw input, status, result, and timestamps.
type Validation struct {
	// ID is the unique identifier of the validation record.
	ID ValidationID `json:"id"`
	// UserID is the identifier of the user who submitted the input.
	UserID UserID `json:"userId"`
	// BatchID groups records submitted together; zero for single submissions.
	BatchID BatchID `json:"batchId,omitempty"`

	// Input is the raw candidate string as submitted.
	Input string `json:"input"`
	// Status is the current lifecycle state of the record.
	Status ValidationStatus `json:"status"`
	// Result contains the evaluation outcome once the record is completed.
	Result ValidationResult `json:"result"`

	// LastError stores the most recent processing error, if any. Evaluation
	// itself never fails; this covers storage or job failures for batch rows.
	LastError string `json:"-"`

	// CreatedAt is the time when the record was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time when the record was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
	// DeletedAt marks when the record was soft-deleted; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}
