package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/careerbot/internal/cache"
	"github.com/ziadkadry99/careerbot/internal/panel"
)

var saveCmd = &cobra.Command{
	Use:   "save <feature>",
	Short: "Save a response to your account",
	Long: `Saves a response under the logged-in account. The content comes from
--file, or from the last cached answer for the feature. The title defaults
to "<feature> - M/D/YYYY".`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	saveCmd.Flags().String("title", "", "title for the saved response")
	saveCmd.Flags().String("file", "", "file holding the response text")
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := parseFeature(args[0])
	if err != nil {
		return err
	}
	title, _ := cmd.Flags().GetString("title")
	filePath, _ := cmd.Flags().GetString("file")
	if !cmd.Flags().Changed("title") {
		title = panel.DefaultTitle(id, time.Now())
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	var content string
	switch {
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", filePath, err)
		}
		content = string(data)
	case a.store != nil:
		res, err := a.store.LatestResult(ctx, id)
		if err != nil {
			return err
		}
		if res == nil {
			return fmt.Errorf("no cached answer for %s; pass --file", id.Info().Name)
		}
		content = res.Raw
	default:
		return fmt.Errorf("--file is required when the cache is disabled")
	}

	ctl, _ := a.controller(id, false)
	serverID, err := ctl.Save(ctx, title, content)
	if err != nil {
		return err
	}
	if a.store != nil {
		if err := a.store.RecordSaved(ctx, cache.Saved{ServerID: serverID, Feature: id, Title: title}); err != nil {
			log.Warnf("remembering saved response: %v", err)
		}
	}
	fmt.Printf("Saved as #%d: %s\n", serverID, title)
	return nil
}
