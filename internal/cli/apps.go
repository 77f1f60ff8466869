package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pixdeck/pkg/applet"
)

type appsFlags struct {
	format string
}

const formatJSON = "json"

func newAppsCommand() *cobra.Command {
	flags := &appsFlags{}

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List built-in applets",
		Long: `List the applets that can be embedded in a slide. A figure directive
embeds one by pointing at a .app descriptor naming it:

  app: bounce
  width: 200
  height: 120`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := applet.DefaultRegistry.Names()
			out := cmd.OutOrStdout()

			switch flags.format {
			case formatJSON:
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(names); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "", "text":
				for _, name := range names {
					if _, err := fmt.Fprintln(out, name); err != nil {
						return fmt.Errorf("write applets: %w", err)
					}
				}
			default:
				return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrUsage, flags.format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}
