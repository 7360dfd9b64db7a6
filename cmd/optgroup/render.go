package main

import (
	"fmt"
	"os"
	"path"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formgen-optgroup/pkg/orchestrator"
	"github.com/goliatone/go-formgen-optgroup/pkg/render"
)

func newRenderCmd(flags *sharedFlags) *cobra.Command {
	var (
		output    string
		display   bool
		themeName string
		assetBase string
		values    map[string]string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form as HTML",
		Long: `Render the form through the vanilla HTML renderer. Select fields bound to
a grouped vocabulary render as <optgroup> elements.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assets, locale, err := flags.load(cmd)
			if err != nil {
				return err
			}

			orch := orchestrator.New(
				orchestrator.WithVocabularies(assets.Vocabularies),
				orchestrator.WithTranslator(assets.Catalog),
				orchestrator.WithWidgetRegistry(assets.Widgets),
			)
			options := render.RenderOptions{
				Locale:  locale,
				Display: display,
				Values:  prefill(values),
			}
			if themeName != "" {
				options.Theme = &theme.RendererConfig{
					Theme: themeName,
					AssetURL: func(key string) string {
						if key == "" {
							return ""
						}
						return path.Join("/", assetBase, key)
					},
				}
			}

			html, err := orch.Generate(cmd.Context(), orchestrator.Request{
				Form:          &assets.Form,
				RenderOptions: options,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout when empty)")
	cmd.Flags().BoolVar(&display, "display", false, "Render selected values in display mode")
	cmd.Flags().StringVar(&themeName, "theme", "", "Theme name; links the bundled stylesheet")
	cmd.Flags().StringVar(&assetBase, "asset-base", "assets", "URL prefix of theme assets")
	cmd.Flags().StringToStringVar(&values, "value", nil, "Prefill a field, e.g. --value dish=leek")
	return cmd
}

func prefill(values map[string]string) map[string]any {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]any, len(values))
	for name, value := range values {
		out[name] = value
	}
	return out
}
