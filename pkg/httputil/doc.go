// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Overview
//
// Helpers for JSON encoding and decoding, uniform {"error": ...} replies
// and the middleware shared by every vlint endpoint.
//
// # Responses
//
//	httputil.WriteSuccess(w, report)
//	httputil.WriteBadRequest(w, "contents is required")
//	httputil.WriteError(w, http.StatusUnprocessableEntity, err)
//
// # Request Parsing
//
//	var req LintRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//
// # Middleware
//
//	handler := httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//	)(router)
package httputil
