package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/careerbot/internal/panel"
)

// alertWriter prints registry-level alerts to stderr.
type alertWriter struct{}

func (alertWriter) Alert(level panel.Level, message string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", level, message)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved response from your account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid response id %q", args[0])
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		reg := panel.NewRegistry(a.client, alertWriter{}, a.panelOptions())
		if err := reg.DeleteSaved(ctx, id); err != nil {
			return err
		}
		if a.store != nil {
			if err := a.store.ForgetSaved(ctx, id); err != nil {
				log.Warnf("forgetting saved response: %v", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
