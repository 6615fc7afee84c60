// Package v1handler implements the v1 HTTP endpoints of the validation
// service on top of the Validator interface.
package v1handler

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"upc/internal/validator"
)

// DefaultLimit is the page size used when a list request does not specify one.
const DefaultLimit = 20

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// Deps carries the dependencies handlers need to serve requests.
type Deps struct {
	Validator validator.Validator
}

// Handler serves the v1 routes. Construct it with New.
type Handler struct {
	deps Deps
	mux  *http.ServeMux

	requests metric.Int64Counter
}

var _ http.Handler = (*Handler)(nil)

// New registers the v1 routes behind the given authenticator and returns the
// resulting handler. Request counts are recorded per route on the provided
// meter provider.
func New(deps Deps, auth *Authenticator, mp metric.MeterProvider) http.Handler {
	h := &Handler{
		deps: deps,
		mux:  http.NewServeMux(),
	}

	meter := mp.Meter("upc/api/v1")
	h.requests, _ = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Number of handled v1 API requests."))

	h.handle("POST /v1/validations", h.createValidation)
	h.handle("GET /v1/validations", h.listValidations)
	h.handle("GET /v1/validations/{id}", h.getValidation)
	h.handle("DELETE /v1/validations/{id}", h.deleteValidation)
	h.handle("POST /v1/batches", h.createBatch)

	return auth.Middleware(h)
}

func (h *Handler) handle(pattern string, fn http.HandlerFunc) {
	h.mux.Handle(pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.requests.Add(r.Context(), 1, metric.WithAttributes(
			attribute.String("route", pattern),
		))
		fn(w, r)
	}))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}
