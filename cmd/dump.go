package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Hummusful/kitzer/internal/session"
	"github.com/Hummusful/kitzer/internal/when"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Fetch once and print the feed to stdout",
	Long:  "Run the full fetch and filter pass without the TUI. Useful for piping and for checking what a filter returns.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		f, err := buildFilter()
		if err != nil {
			return err
		}

		sess := session.New(cfg)
		sess.SetDiagnostics(flagDebug)
		res, err := sess.Load(context.Background(), f, flagRefresh)
		if err != nil {
			return fmt.Errorf("loading feed: %w", err)
		}

		items := res.Items
		if limit := cfg.RenderLimit(); len(items) > limit {
			items = items[:limit]
		}

		now := time.Now()
		for _, it := range items {
			fmt.Printf("[%s] %s · %s\n", it.Language, it.Source, when.Label(it.Timestamp, it.Language, now))
			fmt.Printf("  %s\n", it.Headline)
			if it.Summary != "" {
				fmt.Printf("  %s\n", it.Summary)
			}
			if it.Link != "" {
				fmt.Printf("  %s\n", it.Link)
			}
			fmt.Println()
		}
		fmt.Printf("%d item(s) for %s\n", len(items), f.Key())

		if flagDebug {
			if res.Diag != nil {
				raw, err := json.Marshal(res.Diag)
				if err == nil {
					fmt.Printf("diag: %s\n", raw)
				}
			}
			for _, r := range res.Rungs {
				fmt.Printf("rung: %s\n", r.String())
			}
			for _, e := range res.SourceErrors {
				fmt.Printf("source error: %v\n", e)
			}
		}
		return nil
	},
}
