package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/logger"
)

// runCmd executes a single pipeline batch and exits.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one pipeline batch",
	Long: `Fetch all configured sources once, process every signal through
extraction, resolution, inference, and scoring, and persist the resulting
leads. Exits when the batch completes.`,
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, _ []string) error {
	deps, err := buildDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer deps.Close()

	result, err := deps.Orchestrator.RunBatch(cmd.Context())
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	deps.Log.Info("Batch complete",
		logger.String("run_id", result.RunID),
		logger.Int("fetched", result.Fetched),
		logger.Int("leads_created", result.LeadsCreated),
		logger.Int("dropped", result.DroppedTotal()),
		logger.Duration("took", result.FinishedAt.Sub(result.StartedAt)))

	for reason, count := range result.Dropped {
		deps.Log.Debug("Drop breakdown",
			logger.String("reason", string(reason)),
			logger.Int("count", count))
	}

	return nil
}
