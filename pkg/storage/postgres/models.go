package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"upc/pkg/domain"
)

type PgValidation struct {
	ID     uuid.UUID `db:"id"      goqu:"skipinsert"`
	UserID uuid.UUID `db:"user_id"`

	BatchID uuid.NullUUID   `db:"batch_id"`
	Input   string          `db:"input"`
	Status  string          `db:"status"`
	Result  json.RawMessage `db:"result"`

	LastError sql.NullString `db:"last_error" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

func (p *PgValidation) ToDomain() (*domain.Validation, error) {
	var result domain.ValidationResult
	if len(p.Result) > 0 {
		if err := json.Unmarshal(p.Result, &result); err != nil {
			return nil, fmt.Errorf("could not unmarshal validation result: %w", err)
		}
	}

	return &domain.Validation{
		ID:        domain.ValidationID(p.ID),
		UserID:    domain.UserID(p.UserID),
		BatchID:   domain.BatchID(p.BatchID.UUID),
		Input:     p.Input,
		Status:    domain.ValidationStatus(p.Status),
		Result:    result,
		LastError: p.LastError.String,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
		DeletedAt: p.DeletedAt.Time,
	}, nil
}

func (p *PgValidation) FromDomain(v domain.Validation) error {
	result, err := json.Marshal(v.Result)
	if err != nil {
		return fmt.Errorf("could not marshal validation result: %w", err)
	}

	*p = PgValidation{
		ID:     uuid.UUID(v.ID),
		UserID: uuid.UUID(v.UserID),
		BatchID: uuid.NullUUID{
			UUID:  uuid.UUID(v.BatchID),
			Valid: uuid.UUID(v.BatchID) != uuid.Nil,
		},
		Input:  v.Input,
		Status: string(v.Status),
		Result: result,
		LastError: sql.NullString{
			String: v.LastError,
			Valid:  v.LastError != "",
		},
		CreatedAt: v.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  v.UpdatedAt,
			Valid: !v.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  v.DeletedAt,
			Valid: !v.DeletedAt.IsZero(),
		},
	}

	return nil
}

func domainValidationsToPg(validations []domain.Validation) ([]PgValidation, error) {
	out := make([]PgValidation, len(validations))
	for i := range out {
		if err := out[i].FromDomain(validations[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func pgValidationsToDomain(validations []PgValidation) ([]domain.Validation, error) {
	out := make([]domain.Validation, 0, len(validations))
	for _, v := range validations {
		d, err := v.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
