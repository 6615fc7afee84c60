package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"upc/pkg/domain"
	"upc/pkg/storage"
)

const (
	validationsTable = "validations"
)

func (p *PgSQL) StoreValidations(ctx context.Context, validations ...domain.Validation) ([]domain.Validation, error) {
	if len(validations) == 0 {
		return nil, nil
	}

	pgRows, err := domainValidationsToPg(validations)
	if err != nil {
		return nil, err
	}

	var result []PgValidation
	if err := p.Builder.Insert(validationsTable).
		Rows(pgRows).
		Returning(&PgValidation{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store validations into pg: %w", err)
	}

	return pgValidationsToDomain(result)
}

// UpdateValidationByID updates a single record identified by its ID and
// returns the updated row. Soft-deleted rows are ignored and updated_at is
// set automatically. Only provided fields are changed.
func (p *PgSQL) UpdateValidationByID(ctx context.Context,
	id domain.ValidationID,
	updates storage.ValidationUpdates) (*domain.Validation, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.Status != "" {
		rec["status"] = string(updates.Status)
	}
	if updates.Result != nil {
		b, err := json.Marshal(updates.Result)
		if err != nil {
			return nil, fmt.Errorf("could not marshal result: %w", err)
		}

		rec["result"] = b
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			// set to NULL when empty string provided
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	var row PgValidation
	found, err := p.Builder.Update(validationsTable).
		Set(rec).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgValidation{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update validation by id in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// PendingValidationsByBatch returns all pending rows of a batch, oldest
// first, excluding soft-deleted records.
func (p *PgSQL) PendingValidationsByBatch(ctx context.Context,
	batchID domain.BatchID) ([]domain.Validation, error) {
	var rows []PgValidation
	if err := p.Builder.From(validationsTable).
		Where(
			goqu.I("batch_id").Eq(uuid.UUID(batchID)),
			goqu.I("status").Eq(string(domain.ValidationStatusPending)),
			goqu.I("deleted_at").IsNull(),
		).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch pending validations by batch from pg: %w", err)
	}

	return pgValidationsToDomain(rows)
}

// DeleteValidation performs a soft delete by setting deleted_at timestamp
// for a given record id and user, returning the deleted record.
func (p *PgSQL) DeleteValidation(ctx context.Context,
	userID domain.UserID,
	id domain.ValidationID) (*domain.Validation, error) {
	var row PgValidation
	found, err := p.Builder.Update(validationsTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgValidation{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete validation in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UserValidations returns a page of records for a user filtered by optional
// status and cursor, limited by limit. Results are ordered by created_at
// DESC, id DESC. Returns the next cursor for pagination.
func (p *PgSQL) UserValidations(ctx context.Context,
	userID domain.UserID,
	status domain.ValidationStatus,
	cursor time.Time,
	limit uint) (storage.UserValidations, error) {
	w := []goqu.Expression{
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	}
	if status != "" {
		w = append(w, goqu.I("status").Eq(string(status)))
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(validationsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []PgValidation
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.UserValidations{}, fmt.Errorf("could not fetch user validations from pg: %w", err)
	}

	// if we fetched more than the limit, there is a next page
	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].CreatedAt
		rows = trimmed
	}

	domainRows, err := pgValidationsToDomain(rows)
	if err != nil {
		return storage.UserValidations{}, err
	}

	return storage.UserValidations{
		Validations: domainRows,
		NextCursor:  nextCursor,
	}, nil
}

// ValidationByID returns a record by its ID, excluding soft-deleted rows.
func (p *PgSQL) ValidationByID(ctx context.Context,
	userID domain.UserID,
	id domain.ValidationID) (*domain.Validation, error) {
	var row PgValidation
	found, err := p.Builder.From(validationsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch validation by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
