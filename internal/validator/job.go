package validator

import (
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// BatchJobArgs contains the arguments for a batch validation job submitted to
// River. The batch ID is the unique key so a batch is only processed once.
type BatchJobArgs struct {
	// BatchID identifies the group of pending rows the job will complete.
	BatchID uuid.UUID `json:"batchId" river:"unique"`

	// maxAttempts configures the maximum number of times River should retry the job.
	maxAttempts int
	// uniquePeriod defines the lookback window during which a job with the
	// same arguments is considered a duplicate across the specified states.
	uniquePeriod time.Duration
}

// Kind returns the River job kind used to register and dispatch the batch worker.
func (args BatchJobArgs) Kind() string { return "ValidateBatchJob" }

// InsertOpts returns the River options that control how the job is enqueued,
// including the maximum retry attempts and uniqueness constraints to prevent
// duplicate jobs for the same batch across multiple job states.
func (args BatchJobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		// make sure we only have one job per batch in any state
		UniqueOpts: river.UniqueOpts{
			ByArgs:   true,
			ByPeriod: args.uniquePeriod,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStateCompleted,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
