package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/valv/kitbag/beanstalk"
	"github.com/valv/kitbag/internal/ctxlog"
)

// runWorker consumes jobs until interrupted: kitbag worker [tube...].
// Each worker goroutine owns its own connection, because a blocked
// reserve monopolizes the connection it runs on.
func (a *App) runWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.healthCheckServer(ctx)
	defer a.closeHealthCheckServer(ctx)

	a.logger.Info("👷 Worker starting.",
		"workers", a.config.WorkerCount,
		"tubes", a.config.Args,
		"server", a.file.Server.Addr,
	)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < a.config.WorkerCount; i++ {
		workerID := i
		g.Go(func() error {
			return a.consumeLoop(ctx, workerID)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("worker: %w", err)
	}
	a.logger.Info("🏁 Worker stopped.")
	return nil
}

// consumeLoop reserves, handles and deletes jobs until the context ends.
func (a *App) consumeLoop(ctx context.Context, workerID int) error {
	logger := ctxlog.FromContext(ctx).With("worker", workerID)

	conn, err := a.dialQueue(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	ts, err := conn.TubeSet(a.config.Args...)
	if err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			logger.Debug("Worker context finished, shutting down.")
			return nil
		}

		job, err := ts.Reserve(ctx, a.config.ReserveTimeout)
		switch {
		case errors.Is(err, beanstalk.ErrTimeout):
			continue
		case errors.Is(err, beanstalk.ErrDeadlineSoon):
			logger.Warn("Deadline soon, backing off one cycle.")
			continue
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		case err != nil:
			return err
		}

		logger.Info("Job reserved.", "id", job.ID, "bytes", len(job.Body))
		fmt.Fprintf(a.outW, "job %d: %s\n", job.ID, job.Body)

		if err := conn.Delete(ctx, job.ID); err != nil {
			return fmt.Errorf("deleting job %d: %w", job.ID, err)
		}
	}
}
