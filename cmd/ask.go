package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/careerbot/internal/api"
	"github.com/ziadkadry99/careerbot/internal/feature"
)

var askCmd = &cobra.Command{
	Use:   "ask <feature> [input...]",
	Short: "Ask one of the five career tools and print the formatted answer",
	Long: `Calls the feature's advice route with the input (or stdin when no input
is given) and prints the formatted HTML fragment.

Features: 1 career paths (interest), 2 resume feedback (resume text),
3 job market insights (topic), 4 college/major advice (major),
5 interview tips (role).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("file", "", "resume file to upload (feature 2 only)")
	askCmd.Flags().Bool("raw", false, "print the unformatted server text")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := parseFeature(args[0])
	if err != nil {
		return err
	}
	filePath, _ := cmd.Flags().GetString("file")
	raw, _ := cmd.Flags().GetBool("raw")
	if filePath != "" && id != feature.ResumeReview {
		return fmt.Errorf("--file is only supported for feature 2")
	}

	var input string
	if len(args) > 1 || filePath == "" {
		if input, err = readInput(args[1:]); err != nil {
			return err
		}
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	ctl, _ := a.controller(id, raw)
	if filePath == "" {
		return ctl.Ask(ctx, input)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening resume: %w", err)
	}
	defer f.Close()
	return ctl.AskResume(ctx, input, &api.Upload{Name: filepath.Base(filePath), Body: f})
}
