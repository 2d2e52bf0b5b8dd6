// Package server wires and runs the application's transport servers.
//
// It runs the HTTP API, the optional gRPC health endpoint and the background
// workers under one errgroup, and shuts the transports down gracefully on
// SIGINT, SIGTERM or SIGQUIT before stopping the workers.
package server
