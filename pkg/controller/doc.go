// Package controller contains the HTTP middlewares and helper handlers the
// API server is assembled from.
//
// Middlewares:
//   - WithCORS: permissive CORS headers plus OPTIONS preflight handling.
//   - WithLogger: request-scoped logger and request ID in the context, an
//     access log line and a latency histogram observation per request.
//
// Helpers:
//   - PprofMux: a ServeMux exposing the net/http/pprof handlers.
package controller
