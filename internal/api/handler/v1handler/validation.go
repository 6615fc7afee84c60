package v1handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/jx"
	"github.com/google/uuid"

	"upc/pkg/domain"
)

func encodeValidationResult(e *jx.Encoder, r *domain.ValidationResult) {
	e.ObjStart()
	e.FieldStart("outcome")
	e.Str(string(r.Outcome))
	if r.Digits != "" {
		e.FieldStart("digits")
		e.Str(r.Digits)
	}
	e.FieldStart("valid")
	e.Bool(r.Valid)
	if r.SolvedPosition != 0 {
		e.FieldStart("solvedPosition")
		e.Int(r.SolvedPosition)
	}
	if r.NumberSystem != "" {
		e.FieldStart("numberSystem")
		e.Str(r.NumberSystem)
	}
	if r.Manufacturer != "" {
		e.FieldStart("manufacturer")
		e.Str(r.Manufacturer)
	}
	if r.Product != "" {
		e.FieldStart("product")
		e.Str(r.Product)
	}
	if r.CheckDigit != "" {
		e.FieldStart("checkDigit")
		e.Str(r.CheckDigit)
	}
	if r.Category != "" {
		e.FieldStart("category")
		e.Str(r.Category)
	}
	if r.Error != "" {
		e.FieldStart("error")
		e.Str(r.Error)
	}
	e.ObjEnd()
}

func encodeValidation(e *jx.Encoder, v *domain.Validation) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(uuid.UUID(v.ID).String())
	if uuid.UUID(v.BatchID) != uuid.Nil {
		e.FieldStart("batchId")
		e.Str(uuid.UUID(v.BatchID).String())
	}
	e.FieldStart("input")
	e.Str(v.Input)
	e.FieldStart("status")
	e.Str(string(v.Status))
	if v.Status == domain.ValidationStatusCompleted {
		e.FieldStart("result")
		encodeValidationResult(e, &v.Result)
	}
	e.FieldStart("createdAt")
	encodeTime(e, v.CreatedAt)
	e.FieldStart("updatedAt")
	encodeTime(e, v.UpdatedAt)
	e.ObjEnd()
}

// createValidation evaluates a single code synchronously and stores the
// completed record.
func (h *Handler) createValidation(w http.ResponseWriter, r *http.Request) {
	d, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")

		return
	}

	var code string
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "code" {
			return d.Skip()
		}
		var err error
		code, err = d.Str()

		return err
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")

		return
	}
	if code == "" {
		writeError(w, http.StatusBadRequest, "code is required")

		return
	}

	v, err := h.deps.Validator.Check(r.Context(), GetUserIDFromContext(r.Context()), code)
	if err != nil {
		writeDomainError(r.Context(), w, err)

		return
	}

	e := &jx.Encoder{}
	encodeValidation(e, v)
	writeJSON(w, http.StatusCreated, e)
}

// listValidations returns a page of the authenticated user's history.
func (h *Handler) listValidations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := uint(DefaultLimit)
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || n == 0 || n > MaxLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(MaxLimit))

			return
		}
		limit = uint(n)
	}

	validations, nextCursor, err := h.deps.Validator.History(r.Context(),
		GetUserIDFromContext(r.Context()),
		domain.ValidationStatus(q.Get("status")),
		q.Get("cursor"),
		limit)
	if err != nil {
		writeDomainError(r.Context(), w, err)

		return
	}

	e := &jx.Encoder{}
	e.ObjStart()
	e.FieldStart("validations")
	e.ArrStart()
	for i := range validations {
		encodeValidation(e, &validations[i])
	}
	e.ArrEnd()
	if nextCursor != "" {
		e.FieldStart("nextCursor")
		e.Str(nextCursor)
	}
	e.ObjEnd()
	writeJSON(w, http.StatusOK, e)
}

// getValidation returns a single record by ID, scoped to the caller.
func (h *Handler) getValidation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid validation ID")

		return
	}

	v, err := h.deps.Validator.Result(r.Context(), GetUserIDFromContext(r.Context()), domain.ValidationID(id))
	if err != nil {
		writeDomainError(r.Context(), w, err)

		return
	}

	e := &jx.Encoder{}
	encodeValidation(e, v)
	writeJSON(w, http.StatusOK, e)
}

// deleteValidation soft-deletes a record by ID, scoped to the caller.
func (h *Handler) deleteValidation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid validation ID")

		return
	}

	if err := h.deps.Validator.Delete(r.Context(),
		GetUserIDFromContext(r.Context()),
		domain.ValidationID(id)); err != nil {
		writeDomainError(r.Context(), w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
