package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/config"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/infer"
)

// rulesCmd lists the active product inference rules in a formatted table.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List product inference rules",
	Long: `List the keyword-to-product inference rules in effect: either the
rules from the configuration file, or the compiled-in default catalog.`,
	RunE: listRules,
}

func listRules(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rules := cfg.Inference.Rules
	origin := "config"
	if len(rules) == 0 {
		rules = infer.DefaultRules()
		origin = "default catalog"
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Keyword", "Product", "Confidence", "Reason"})

	for _, rule := range rules {
		t.AppendRow(table.Row{rule.Keyword, rule.Product, fmt.Sprintf("%.2f", rule.Confidence), rule.Reason})
	}

	t.Render()
	fmt.Printf("%d rules (%s), confidence floor %.2f\n", len(rules), origin, cfg.Inference.ConfidenceFloor)
	return nil
}
