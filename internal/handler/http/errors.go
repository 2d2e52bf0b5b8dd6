// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("no token provided")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoUserInContext means a protected handler was reached without the
	// auth middleware.
	ErrNoUserInContext = errors.New("no authenticated user in request context")

	ErrInvalidJSON     = errors.New("invalid JSON was passed")
	ErrInvalidGZipBody = errors.New("invalid gzip request body")
	ErrInvalidForm     = errors.New("invalid multipart form")
	ErrInvalidID       = errors.New("invalid id")

	// ErrUnsupportedUploadKind is returned for upload kinds other than
	// "image" and "audio".
	ErrUnsupportedUploadKind = errors.New("unsupported upload kind")

	// ErrMissingFile is returned when an upload carries no "file" part.
	ErrMissingFile = errors.New("no file uploaded")
)
