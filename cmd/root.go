package cmd

import (
	"os"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/careerbot/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "careerbot",
	Short: "Terminal and local front end for the career-advice server",
	Long: `careerbot drives the career-advice server's five tools (career paths,
resume feedback, job market insights, college advice and interview tips)
from the terminal, formats the AI responses into HTML fragments, validates
account forms and serves a local preview page. It also exposes the
formatter and validators to AI agents via MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetOutputLevel(log.Ldebug)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

