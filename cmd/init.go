package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/careerbot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize careerbot configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to point careerbot at a career-advice server and writes the config file (default .careerbot.yml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
