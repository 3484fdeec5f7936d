package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/careerbot/internal/feature"
	"github.com/ziadkadry99/careerbot/internal/format"
	"github.com/ziadkadry99/careerbot/internal/progress"
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Format saved server text into HTML without calling the server",
	Long: `Formats a reply the way the panels do. Reads the file, or stdin when no
file is given. With --glob every matching file is formatted into a sibling
<file>.html.

--feature 0 uses the generic paragraph formatter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().Int("feature", 0, "feature grammar to apply (0-5)")
	formatCmd.Flags().String("glob", "", "format every file matching this pattern (e.g. \"replies/**/*.txt\")")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	n, _ := cmd.Flags().GetInt("feature")
	pattern, _ := cmd.Flags().GetString("glob")

	id := feature.ID(n)
	if n != 0 {
		var err error
		if id, err = parseFeature(strconv.Itoa(n)); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	formatter, err := newFormatter(cfg)
	if err != nil {
		return err
	}

	if pattern != "" {
		if len(args) > 0 {
			return fmt.Errorf("pass either a file or --glob, not both")
		}
		return formatGlob(formatter, id, pattern)
	}

	var data []byte
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	fmt.Println(formatter.Format(string(data), id))
	return nil
}

func formatGlob(formatter *format.Formatter, id feature.ID, pattern string) error {
	matches, err := doublestar.Glob(os.DirFS("."), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match %q", pattern)
	}

	reporter := progress.NewReporter()
	reporter.Start(len(matches))
	defer reporter.Finish()

	var failed int
	for i, path := range matches {
		reporter.Update(i+1, path)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warnf("skipping %s: %v", path, err)
			failed++
			continue
		}
		out := formatter.Format(string(data), id)
		if err := os.WriteFile(path+".html", []byte(out), 0o644); err != nil {
			log.Warnf("writing %s.html: %v", path, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(matches))
	}
	return nil
}
