package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formgen-optgroup/internal/bootstrap"
)

// sharedFlags are the persistent flags every subcommand loads assets with.
type sharedFlags struct {
	form          string
	vocabularies  string
	locales       string
	lang          string
	openapi       string
	schemas       []string
	allowHTTP     bool
	defaultLocale string
}

func (f *sharedFlags) bootstrap() bootstrap.Config {
	return bootstrap.Config{
		Form:           f.form,
		VocabularyDir:  f.vocabularies,
		LocalesDir:     f.locales,
		OpenAPI:        f.openapi,
		OpenAPISchemas: f.schemas,
		DefaultLocale:  f.defaultLocale,
		AllowHTTP:      f.allowHTTP,
	}
}

func (f *sharedFlags) load(cmd *cobra.Command) (*bootstrap.Assets, string, error) {
	assets, err := bootstrap.Load(cmd.Context(), f.bootstrap())
	if err != nil {
		return nil, "", err
	}
	return assets, assets.Catalog.Match(f.lang).String(), nil
}

func newRootCmd() *cobra.Command {
	flags := &sharedFlags{}
	rootCmd := &cobra.Command{
		Use:   "optgroup",
		Short: "Render grouped select forms",
		Long: `optgroup renders forms whose select fields are grouped by the optgroup
of their vocabulary terms. Forms render to HTML, run as terminal prompts,
or expose their grouped options as JSON.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.form, "form", "", "Form document path or URL (bundled example when empty)")
	pf.StringVar(&flags.vocabularies, "vocabularies", "", "Directory of vocabulary YAML/JSON files")
	pf.StringVar(&flags.locales, "locales", "", "Directory of catalog YAML files")
	pf.StringVar(&flags.lang, "lang", "", "Locale to translate titles and labels into")
	pf.StringVar(&flags.openapi, "openapi", "", "OpenAPI document path or URL providing vocabularies")
	pf.StringSliceVar(&flags.schemas, "schema", nil, "Component schemas of --openapi to register as vocabularies")
	pf.BoolVar(&flags.allowHTTP, "allow-http", false, "Allow fetching http(s) locations")
	pf.StringVar(&flags.defaultLocale, "default-locale", "en-US", "Catalog fallback locale")

	rootCmd.AddCommand(
		newRenderCmd(flags),
		newPromptCmd(flags),
		newOptionsCmd(flags),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
