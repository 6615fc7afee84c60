package v1handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
)

// createBatch stores the submitted codes as pending records and enqueues a
// job to evaluate them.
func (h *Handler) createBatch(w http.ResponseWriter, r *http.Request) {
	d, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")

		return
	}

	var codes []string
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "codes" {
			return d.Skip()
		}

		return d.Arr(func(d *jx.Decoder) error {
			code, err := d.Str()
			if err != nil {
				return err
			}
			codes = append(codes, code)

			return nil
		})
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")

		return
	}

	batchID, validations, err := h.deps.Validator.CheckBatch(r.Context(),
		GetUserIDFromContext(r.Context()), codes)
	if err != nil {
		writeDomainError(r.Context(), w, err)

		return
	}

	e := &jx.Encoder{}
	e.ObjStart()
	e.FieldStart("batchId")
	e.Str(uuid.UUID(batchID).String())
	e.FieldStart("count")
	e.Int(len(validations))
	e.ObjEnd()
	writeJSON(w, http.StatusAccepted, e)
}
