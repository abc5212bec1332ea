package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Hummusful/kitzer/internal/config"
	"github.com/Hummusful/kitzer/internal/genre"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagGenre   string
	flagLang    string
	flagDays    int
	flagMode    string
	flagMarket  string
	flagMonths  int
	flagLimit   int
	flagRefresh bool
	flagDebug   bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "kitzer",
	Short: "TUI music news reader",
	Long:  "kitzer pulls music news and fresh releases from an aggregator, Spotify and optional RSS feeds into a terminal dashboard.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagGenre, "genre", "all", "genre tab: all, hebrew, electronic, international")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "he", "interface language for date labels: he or en")
	rootCmd.PersistentFlags().IntVar(&flagDays, "days", 0, "only show items from the last N days")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "release mode override: curated or extended")
	rootCmd.PersistentFlags().StringVar(&flagMarket, "market", "", "release market override, e.g. IL or US")
	rootCmd.PersistentFlags().IntVar(&flagMonths, "months", 0, "how many months of releases to request")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 0, "max items to render")
	rootCmd.PersistentFlags().BoolVar(&flagRefresh, "refresh", false, "bypass the cache and fetch fresh")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "show server diagnostics and the fallback trail")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(sourcesCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kitzer %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// loadConfig reads the config file and applies flag overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagMode != "" {
		cfg.Mode = strings.ToLower(flagMode)
	}
	if flagMarket != "" {
		cfg.Market = strings.ToUpper(flagMarket)
	}
	if flagMonths > 0 {
		cfg.MonthsBack = flagMonths
	}
	if flagLimit > 0 {
		cfg.MaxItems = flagLimit
	}
	return cfg, nil
}

// buildFilter turns the CLI flags into the active selection.
func buildFilter() (genre.Filter, error) {
	g, err := genre.Resolve(flagGenre)
	if err != nil {
		return genre.Filter{}, fmt.Errorf("invalid --genre value: %w", err)
	}
	lang, err := resolveLang(flagLang)
	if err != nil {
		return genre.Filter{}, err
	}
	if flagDays < 0 {
		return genre.Filter{}, fmt.Errorf("invalid --days value: %d", flagDays)
	}
	return genre.Filter{Genre: g, Lang: lang, Days: flagDays}, nil
}

func resolveLang(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "he", "he-il", "hebrew":
		return "HE", nil
	case "en", "en-gb", "en-us", "english":
		return "EN", nil
	}
	return "", fmt.Errorf("invalid --lang value: %q (want he or en)", v)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
