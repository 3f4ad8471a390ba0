package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/logger"
)

const schedulerShutdownTimeout = 30 * time.Second

// schedulerCmd runs pipeline batches on a cron schedule until interrupted.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run pipeline batches on a schedule",
	Long: `Run the pipeline continuously, triggering a batch on the configured
cron schedule. If a batch is still running when the next tick fires, the
tick is skipped. Stops gracefully on SIGINT/SIGTERM.`,
	RunE: runScheduler,
}

func runScheduler(cmd *cobra.Command, _ []string) error {
	deps, err := buildDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer deps.Close()

	schedule := deps.Cfg.Service.CronSchedule
	deps.Log.Info("Starting scheduler", logger.String("schedule", schedule))

	// batchMu skips ticks that fire while a batch is still running.
	var batchMu sync.Mutex

	runOnce := func(ctx context.Context) {
		if !batchMu.TryLock() {
			deps.Log.Warn("Previous batch still running, skipping tick")
			return
		}
		defer batchMu.Unlock()

		result, runErr := deps.Orchestrator.RunBatch(ctx)
		if runErr != nil {
			deps.Log.Error("Scheduled batch failed", logger.Error(runErr))
			return
		}
		deps.Log.Info("Scheduled batch complete",
			logger.String("run_id", result.RunID),
			logger.Int("fetched", result.Fetched),
			logger.Int("leads_created", result.LeadsCreated),
			logger.Int("dropped", result.DroppedTotal()))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { runOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	c.Start()

	// Run one batch immediately so a fresh deploy does not sit idle
	// until the first tick.
	runOnce(ctx)

	<-ctx.Done()
	deps.Log.Info("Shutdown signal received")

	// Stop accepting ticks, then wait for a running batch to finish.
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
		deps.Log.Info("Scheduler stopped")
	case <-time.After(schedulerShutdownTimeout):
		deps.Log.Warn("Scheduler shutdown timed out")
	}

	return nil
}
