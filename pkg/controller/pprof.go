package controller

import (
	"net/http"
	"net/http/pprof"
)

// pprofHandlers maps sub-paths to the pprof handlers that need dedicated
// routes; everything else is served by pprof.Index.
var pprofHandlers = map[string]http.HandlerFunc{ //nolint: gochecknoglobals
	"/cmdline": pprof.Cmdline,
	"/profile": pprof.Profile,
	"/symbol":  pprof.Symbol,
	"/trace":   pprof.Trace,
}

// PprofMux returns an http.ServeMux exposing the net/http/pprof handlers.
// Mount it under a debug-only path on the main server.
func PprofMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", pprof.Index)
	for path, handler := range pprofHandlers {
		mux.HandleFunc(path, handler)
	}

	return mux
}
