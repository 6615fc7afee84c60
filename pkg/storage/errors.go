package storage

import "errors"

// Transaction state errors shared by all storage implementations.
var (
	// ErrAlreadyInTx is returned when Begin is called on a handle that is
	// already transactional.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned when Commit or Rollback is called outside a
	// transaction.
	ErrNotInTx = errors.New("not in tx")
)
