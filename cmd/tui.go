package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Hummusful/kitzer/internal/session"
	"github.com/Hummusful/kitzer/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
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
	opts := tui.RunOpts{Cfg: cfg, Sess: sess, Filter: f, Debug: flagDebug, Force: flagRefresh}
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
