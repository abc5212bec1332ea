package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured endpoints and feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cfg.AggregatorEndpoint != "" {
			fmt.Printf("aggregator: %s\n", cfg.AggregatorEndpoint)
		}
		if cfg.SpotifyEndpoint != "" {
			fmt.Printf("releases:   %s (mode=%s market=%s months=%d)\n",
				cfg.SpotifyEndpoint, cfg.Mode, cfg.Market, cfg.MonthsBack)
		}
		if len(cfg.RSSSources) == 0 {
			fmt.Println("rss:        none configured")
			return nil
		}
		fmt.Println("rss:")
		for _, s := range cfg.RSSSources {
			lang := s.Lang
			if lang == "" {
				lang = "en"
			}
			fmt.Printf("  %-20s %s (%s)\n", s.Name, s.URL, lang)
		}
		return nil
	},
}
