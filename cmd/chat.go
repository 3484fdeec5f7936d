package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/careerbot/internal/panel"
)

var chatCmd = &cobra.Command{
	Use:   "chat <feature>",
	Short: "Chat about a feature's advice",
	Long: `Sends follow-up messages to the feature's conversation and prints the
transcript the server returns. Without --message an interactive prompt is
started; enter an empty line or "exit" to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringP("message", "m", "", "send one message and exit")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := parseFeature(args[0])
	if err != nil {
		return err
	}
	message, _ := cmd.Flags().GetString("message")

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	ctl, _ := a.controller(id, false)
	if message != "" {
		return ctl.Send(ctx, message)
	}

	if a.session.LoggedIn {
		if err := ctl.LoadHistory(ctx); err != nil {
			return err
		}
	}

	prompt := promptui.Prompt{Label: id.Info().Name}
	return chatLoop(ctx, ctl, prompt.Run)
}

// chatLoop sends each line read by next until an empty line, "exit" or the
// end of input. A failed message has already been shown in the transcript,
// so the loop keeps going.
func chatLoop(ctx context.Context, ctl *panel.Controller, next func() (string, error)) error {
	for {
		line, err := next()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" || line == "exit" {
			return nil
		}
		if err := ctl.Send(ctx, line); err != nil {
			if errors.Is(err, panel.ErrLoginRequired) || ctx.Err() != nil {
				return err
			}
			log.Warnf("chat: %v", err)
		}
	}
}
