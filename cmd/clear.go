package cmd

import (
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear <feature>",
	Short: "Clear a feature's chat history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseFeature(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		ctl, _ := a.controller(id, false)
		return ctl.Clear(ctx)
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
