// Package cmd implements the command-line interface for the lead engine.
// It provides the root command and subcommands for running batches, the
// scheduler, and the ops HTTP server.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug mode for all commands.
	debug bool

	// rootCmd represents the root command for the lead-engine CLI.
	rootCmd = &cobra.Command{
		Use:   "lead-engine",
		Short: "B2B lead inference and scoring pipeline",
		Long: `Lead engine monitors procurement signals (tenders, news feeds),
extracts companies and product demand from them, and turns high-intent
matches into scored, deduplicated sales leads.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lead-engine version %s\n", serviceVersion)
		},
	})

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(schedulerCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(rulesCmd)
}
