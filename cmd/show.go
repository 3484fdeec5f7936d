package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <feature>",
	Short: "Print the last cached answer for a feature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseFeature(args[0])
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetBool("raw")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		formatter, err := newFormatter(cfg)
		if err != nil {
			return err
		}
		store, closeCache, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer closeCache()
		if store == nil {
			return fmt.Errorf("the cache is disabled (cache.enabled: false)")
		}

		res, err := store.LatestResult(ctx, id)
		if err != nil {
			return err
		}
		if res == nil {
			return fmt.Errorf("no cached answer for %s; run `careerbot ask %s ...` first", id.Info().Name, id)
		}
		if raw {
			fmt.Println(res.Raw)
			return nil
		}
		fmt.Println(formatter.Format(res.Raw, id))
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "print the unformatted server text")
	rootCmd.AddCommand(showCmd)
}
