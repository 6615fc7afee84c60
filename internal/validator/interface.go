package validator

import (
	"context"

	"upc/pkg/domain"
)

//go:generate mockgen -package mockvalidator -source=interface.go -destination=mock/mockvalidator.go *
type Validator interface {
	Check(ctx context.Context, userID domain.UserID, input string) (*domain.Validation, error)
	CheckBatch(ctx context.Context,
		userID domain.UserID,
		inputs []string) (domain.BatchID, []domain.Validation, error)
	CompleteBatch(ctx context.Context, batchID domain.BatchID) error
	History(ctx context.Context,
		userID domain.UserID,
		status domain.ValidationStatus,
		cursor string,
		limit uint) ([]domain.Validation, string, error)
	Result(ctx context.Context, userID domain.UserID, id domain.ValidationID) (*domain.Validation, error)
	Delete(ctx context.Context, userID domain.UserID, id domain.ValidationID) error
}
