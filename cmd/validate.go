package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/careerbot/internal/forms"
)

var validateCmd = &cobra.Command{
	Use:   "validate <login|register|profile>",
	Short: "Check account form values before submitting them",
	Long: `Runs the same checks the account pages run before submission and reports
the first invalid field.

  careerbot validate register --field username=ana --field email=ana@example.com \
    --field password=secret1 --field password2=secret1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, _ := cmd.Flags().GetStringArray("field")
		values := url.Values{}
		for _, p := range pairs {
			k, v, ok := strings.Cut(p, "=")
			if !ok {
				return fmt.Errorf("invalid --field %q: want name=value", p)
			}
			values.Set(k, v)
		}

		form, err := forms.FromValues(args[0], values)
		if err != nil {
			return err
		}
		if err := form.Validate(); err != nil {
			var fe *forms.FieldError
			if errors.As(err, &fe) {
				return fmt.Errorf("%s: %s", fe.Field, fe.Message)
			}
			return err
		}
		fmt.Println("OK")
		return nil
	},
}

func init() {
	validateCmd.Flags().StringArray("field", nil, "form value as name=value (repeatable)")
	rootCmd.AddCommand(validateCmd)
}
