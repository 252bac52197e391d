// Package transfer invokes the external transfer tool against a finalized
// batch and retries whole batches on transient failures.
package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/bft-labs/treeship/internal/batch"
	"github.com/bft-labs/treeship/internal/domain"
)

const (
	// exitTransient is rsync's exit status for protocol/connection-class
	// failures, the only status treated as recoverable.
	exitTransient = 12

	// DefaultMaxAttempts is the total attempt budget per batch.
	DefaultMaxAttempts = 5

	// DefaultRetryDelay is the fixed backoff between attempts.
	DefaultRetryDelay = 90 * time.Second
)

// Options configures an Executor.
type Options struct {
	// Source is the local source root; its hierarchy is mirrored under Dest.
	Source string

	// Dest is the destination spec, consumed verbatim by the transfer tool.
	Dest string

	// RsyncPath is the transfer binary to invoke. Defaults to "rsync".
	RsyncPath string

	// ExtraOptions is an operator-supplied option string, whitespace-split
	// and appended verbatim after the baseline option set.
	ExtraOptions string

	// MaxAttempts is the total attempt budget per batch.
	MaxAttempts int

	// RetryDelay is the fixed backoff slept between attempts.
	RetryDelay time.Duration
}

// Executor runs the transfer command for one batch at a time with bounded
// retry. A retry always resubmits the entire batch listing; skipping files
// that are already current at the destination is delegated to the transfer
// tool's own up-to-date check.
type Executor struct {
	opts   Options
	runner Runner
	clock  clockwork.Clock
	log    zerolog.Logger
}

// NewExecutor creates an executor. A nil runner uses ExecRunner; a nil clock
// uses the real clock. Zero Options fields take the package defaults.
func NewExecutor(opts Options, runner Runner, clock clockwork.Clock, log zerolog.Logger) *Executor {
	if opts.RsyncPath == "" {
		opts.RsyncPath = "rsync"
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Executor{opts: opts, runner: runner, clock: clock, log: log}
}

// Run finalizes the batch listing and invokes the transfer tool until it
// succeeds, fails fatally, or the attempt budget is exhausted.
//
// Exit status 0 terminates the loop successfully. The transient status gets
// a recoverable-failure notice and a fixed backoff before the same batch is
// resubmitted; no backoff follows the final attempt, and canceling ctx
// during a backoff aborts the run. Any other non-zero status is immediately
// fatal and carries the status in a [domain.TransferError].
func (e *Executor) Run(ctx context.Context, b *batch.Batch) error {
	if err := b.Finalize(); err != nil {
		return err
	}
	args := rsyncArgs(b.ListingPath(), e.opts.Source, e.opts.Dest, e.opts.ExtraOptions)

	for attempt := 1; attempt <= e.opts.MaxAttempts; attempt++ {
		e.log.Debug().
			Str("cmd", e.opts.RsyncPath).
			Int("files", b.Count()).
			Uint64("bytes", b.TotalBytes()).
			Int("attempt", attempt).
			Msg("starting transfer")

		status, err := e.runner.Run(ctx, e.opts.RsyncPath, args)
		if err != nil {
			return fmt.Errorf("run %s: %w", e.opts.RsyncPath, err)
		}

		switch status {
		case 0:
			e.log.Info().
				Int("files", b.Count()).
				Uint64("bytes", b.TotalBytes()).
				Int("attempt", attempt).
				Msg("batch transferred")
			return nil
		case exitTransient:
			e.log.Warn().
				Int("exit_status", status).
				Int("attempt", attempt).
				Int("max_attempts", e.opts.MaxAttempts).
				Dur("retry_delay", e.opts.RetryDelay).
				Msg("transient transfer failure")
			if attempt < e.opts.MaxAttempts {
				select {
				case <-e.clock.After(e.opts.RetryDelay):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		default:
			return &domain.TransferError{ExitCode: status}
		}
	}
	return domain.ErrRetriesExhausted
}
