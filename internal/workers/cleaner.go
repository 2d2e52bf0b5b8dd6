// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/store"
	"github.com/MKhiriev/notes-keeper/models"
	"golang.org/x/sync/errgroup"
)

type cleanupJob struct {
	ref    models.AttachmentRef
	logger *logger.Logger
}

// AttachmentCleaner deletes attachments in the background.
//
// Jobs are kept in a bounded queue served by a fixed number of goroutines.
// A full queue drops the job with an error log; the orphaned attachment stays
// in storage. On shutdown the goroutines stop and the remaining queue is
// drained within the configured timeout.
type AttachmentCleaner struct {
	deleter     AttachmentDeleter
	jobs        chan cleanupJob
	concurrency int
	timeout     time.Duration
	logger      *logger.Logger
}

func NewAttachmentCleaner(deleter AttachmentDeleter, cfg config.Workers, logger *logger.Logger) *AttachmentCleaner {
	logger.Debug().
		Int("concurrency", cfg.CleanupConcurrency).
		Int("queue_size", cfg.CleanupQueueSize).
		Msg("creating attachment cleaner")

	return &AttachmentCleaner{
		deleter:     deleter,
		jobs:        make(chan cleanupJob, max(cfg.CleanupQueueSize, 1)),
		concurrency: max(cfg.CleanupConcurrency, 1),
		timeout:     cfg.CleanupTimeout,
		logger:      logger,
	}
}

// Enqueue schedules refs for deletion without blocking.
func (c *AttachmentCleaner) Enqueue(ctx context.Context, refs ...models.AttachmentRef) {
	log := logger.FromContext(ctx)

	for _, ref := range refs {
		select {
		case c.jobs <- cleanupJob{ref: ref, logger: log}:
		default:
			log.Error().
				Str("func", "AttachmentCleaner.Enqueue").
				Str("attachment_id", ref.ID).
				Str("bucket", string(ref.Bucket)).
				Msg("cleanup queue is full, attachment is left orphaned")
		}
	}
}

// Pending returns the number of queued jobs.
func (c *AttachmentCleaner) Pending() int {
	return len(c.jobs)
}

// Run serves the queue until ctx is cancelled, then drains it.
func (c *AttachmentCleaner) Run(ctx context.Context) error {
	c.logger.Info().Int("concurrency", c.concurrency).Msg("attachment cleaner started")

	var group errgroup.Group
	for range c.concurrency {
		group.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case job := <-c.jobs:
					c.process(context.WithoutCancel(ctx), job)
				}
			}
		})
	}
	_ = group.Wait()

	c.drain(context.WithoutCancel(ctx))
	c.logger.Info().Msg("attachment cleaner stopped")

	return nil
}

func (c *AttachmentCleaner) drain(ctx context.Context) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	for {
		select {
		case job := <-c.jobs:
			c.process(ctx, job)
		default:
			return
		}

		if ctx.Err() != nil {
			c.logger.Warn().Int("pending", len(c.jobs)).Msg("cleanup drain timed out")
			return
		}
	}
}

func (c *AttachmentCleaner) process(ctx context.Context, job cleanupJob) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	ctx = job.logger.WithContext(ctx)

	err := c.deleter.Delete(ctx, job.ref)
	switch {
	case err == nil:
		job.logger.Debug().
			Str("attachment_id", job.ref.ID).
			Str("bucket", string(job.ref.Bucket)).
			Msg("attachment deleted")
	case errors.Is(err, store.ErrAttachmentNotFound):
		job.logger.Debug().
			Str("attachment_id", job.ref.ID).
			Msg("attachment already gone")
	default:
		job.logger.Err(err).
			Str("func", "AttachmentCleaner.process").
			Str("attachment_id", job.ref.ID).
			Str("bucket", string(job.ref.Bucket)).
			Msg("attachment cleanup failed")
	}
}
