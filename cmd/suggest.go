package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/careerbot/internal/feature"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <interest...>",
	Short: "List careers that match an interest",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		interest, err := readInput(args)
		if err != nil {
			return err
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		ctl, _ := a.controller(feature.CareerPaths, false)
		_, err = ctl.Suggest(ctx, interest)
		return err
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
