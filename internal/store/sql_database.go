package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/migrations"
	"github.com/sethvargo/go-retry"
)

const (
	defaultMaxRetries = 3
	defaultRetryBase  = 50 * time.Millisecond
)

// DB wraps the connection pool together with the error classifier used to
// retry transient failures of read queries.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	maxRetries uint64
	retryBase  time.Duration
}

func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB)
}

// withRetry runs fn and retries it with exponential backoff while the
// classifier reports the returned error as Retryable. The last error is
// returned unwrapped.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	if db.errorClassificator == nil {
		return fn(ctx)
	}

	maxRetries, base := db.maxRetries, db.retryBase
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	if base <= 0 {
		base = defaultRetryBase
	}

	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(base))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.errorClassificator.Classify(err) == Retryable {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "*DB.withRetry").Msg("retrying transient database error")
			return retry.RetryableError(err)
		}
		return err
	})
}
