// Package http implements the REST transport of notes-keeper.
//
// It wires the chi router under /api, the request-scoped middleware (trace id,
// access log, gzip, bearer authentication, CORS, body size cap) and the
// handlers that translate JSON and multipart requests into service calls.
// Service errors are turned into HTTP statuses in one place, see
// statusFromError.
package http
