// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values applied to every field left empty by all sources.
const (
	DefaultTokenIssuer      = "notes-keeper"
	DefaultTokenDuration    = time.Hour
	DefaultPasswordHashCost = 10
	DefaultBinaryDataDir    = "./data/blobs"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultMaxBodyBytes     = 10 << 20
	DefaultCORSOrigin       = "http://localhost:5173"
	DefaultCleanupWorkers   = 2
	DefaultCleanupQueueSize = 128
	DefaultCleanupTimeout   = 10 * time.Second
	DefaultLogLevel         = "debug"
	DefaultLogFileMaxSizeMB = 100
)

// Defaults returns the configuration used for every unset field.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      DefaultTokenIssuer,
			TokenDuration:    DefaultTokenDuration,
			PasswordHashCost: DefaultPasswordHashCost,
			Version:          "dev",
		},
		Storage: Storage{
			Files: Files{BinaryDataDir: DefaultBinaryDataDir},
		},
		Server: Server{
			RequestTimeout:     DefaultRequestTimeout,
			ShutdownTimeout:    DefaultShutdownTimeout,
			MaxBodyBytes:       DefaultMaxBodyBytes,
			CORSAllowedOrigins: []string{DefaultCORSOrigin},
		},
		Workers: Workers{
			CleanupConcurrency: DefaultCleanupWorkers,
			CleanupQueueSize:   DefaultCleanupQueueSize,
			CleanupTimeout:     DefaultCleanupTimeout,
		},
		Log: Log{
			Level:         DefaultLogLevel,
			FileMaxSizeMB: DefaultLogFileMaxSizeMB,
		},
	}
}
