// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Overview
//
// This package offers helpers for JSON encoding/decoding, error responses,
// parameter parsing and the middleware shared by the planner API.
//
// # Response Helpers
//
//	httputil.WriteSuccess(w, quote)
//	httputil.WriteCreated(w, session)
//	httputil.WriteCodedError(w, http.StatusNotFound, "unknown_module", err.Error())
//
// # Request Parsing
//
//	var req QuoteRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//
//	id, ok := httputil.ParsePathStringOrError(w, r, "id")
//	selected := httputil.ParseQueryList(r, "selected")
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//		httputil.MaxBytesMiddleware(1<<20),
//	)
//
// # Related Packages
//
//   - pkg/middleware: Rate limiting
//   - pkg/observability: Logger used by the middleware
package httputil
