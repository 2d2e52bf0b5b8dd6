// Package config provides configuration loading, merging, and validation
// facilities for the notes-keeper server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. .env file
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// Unset fields are filled from [Defaults]. The main entry point is
// [GetStructuredConfig].
package config
