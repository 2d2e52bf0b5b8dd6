package server

import "context"

// Server runs every configured transport until ctx is cancelled or a
// termination signal arrives.
type Server interface {
	Run(ctx context.Context) error
}

// transport is the lifecycle of a single listener.
type transport interface {
	// RunServer serves requests and blocks until the server stops. A stop
	// requested through Shutdown is not an error.
	RunServer() error

	// Shutdown stops accepting requests and waits for in-flight ones until
	// ctx is done.
	Shutdown(ctx context.Context) error
}
