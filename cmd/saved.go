package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List responses saved from this machine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
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

		list, err := store.ListSaved(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No saved responses.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFEATURE\tTITLE\tSAVED")
		for _, s := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ServerID, s.Feature.Info().Name, s.Title, s.SavedAt.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(savedCmd)
}
