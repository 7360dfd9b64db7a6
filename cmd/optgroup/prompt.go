package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formgen-optgroup/pkg/render"
	"github.com/goliatone/go-formgen-optgroup/pkg/renderers/tui"
)

// newPromptDriver is swapped in tests.
var newPromptDriver = func(out io.Writer) tui.PromptDriver {
	return tui.NewSurveyDriver(out)
}

func newPromptCmd(flags *sharedFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill the form interactively in the terminal",
		Long: `Prompt every field in the terminal. Grouped options are labelled
"Group › Title". The answers are printed as JSON, as the form-urlencoded body
an HTML submission would send, or as a readable summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := parseOutputFormat(format)
			if err != nil {
				return err
			}
			assets, locale, err := flags.load(cmd)
			if err != nil {
				return err
			}

			renderer, err := tui.New(
				tui.WithPromptDriver(newPromptDriver(cmd.ErrOrStderr())),
				tui.WithOutputFormat(outputFormat),
				tui.WithWidgetRegistry(assets.Widgets),
				tui.WithTheme(tui.Theme{InfoPrefix: "i ", ErrorPrefix: "! "}),
			)
			if err != nil {
				return err
			}

			out, err := renderer.Render(cmd.Context(), assets.Form, render.RenderOptions{
				Locale:       locale,
				Translator:   assets.Catalog,
				Vocabularies: assets.Vocabularies,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "Output format: json, form or pretty")
	return cmd
}

func parseOutputFormat(raw string) (tui.OutputFormat, error) {
	switch format := tui.OutputFormat(raw); format {
	case tui.OutputFormatJSON, tui.OutputFormatFormURLEncoded, tui.OutputFormatPrettyText:
		return format, nil
	default:
		return "", fmt.Errorf("unknown format %q", raw)
	}
}
