package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/config"
)

// sourcesCmd lists the configured signal sources in a formatted table.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured signal sources",
	RunE:  listSources,
}

func listSources(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Type", "URL"})

	if cfg.Sources.DemoEnabled {
		t.AppendRow(table.Row{"demo", "demo", "-"})
	}
	for _, feed := range cfg.Sources.Feeds {
		t.AppendRow(table.Row{feed.Name, "rss", feed.URL})
	}
	for _, tender := range cfg.Sources.Tenders {
		t.AppendRow(table.Row{tender.Name, "tender", tender.URL})
	}

	if t.Length() == 0 {
		fmt.Println("No sources configured")
		return nil
	}

	t.Render()
	return nil
}
