package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/careerbot/internal/cache"
	"github.com/ziadkadry99/careerbot/internal/db"
	"github.com/ziadkadry99/careerbot/internal/panel"
)

var historyCmd = &cobra.Command{
	Use:   "history <feature>",
	Short: "Show a feature's chat history",
	Long: `Loads the logged-in user's chat history for the feature from the server.
With --offline the last transcript seen by this machine is read from the
local cache instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Bool("offline", false, "read the cached transcript instead of calling the server")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := parseFeature(args[0])
	if err != nil {
		return err
	}
	offline, _ := cmd.Flags().GetBool("offline")

	if offline {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		formatter, err := newFormatter(cfg)
		if err != nil {
			return err
		}
		database, err := db.Open(cfg.Cache.Path)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer database.Close()

		msgs, err := cache.NewStore(database).Transcript(ctx, id)
		if err != nil {
			return err
		}
		newTerminalView(os.Stdout, os.Stderr, id, false).ShowTranscript(panel.RenderTranscript(formatter, id, msgs))
		return nil
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	ctl, _ := a.controller(id, false)
	if err := ctl.LoadHistory(ctx); err != nil {
		if errors.Is(err, panel.ErrLoginRequired) {
			return fmt.Errorf("chat history needs a logged-in session: set api.session_cookie or use --offline")
		}
		return err
	}
	return nil
}
