package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formgen-optgroup/components/optgroups"
	"github.com/goliatone/go-formgen-optgroup/examples/food"
)

func newOptionsCmd(flags *sharedFlags) *cobra.Command {
	var (
		name  string
		query string
		limit int
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print a vocabulary's grouped options as JSON",
		Long: `Print the options of a vocabulary grouped by optgroup, in vocabulary order.
--query filters by label, token or group; --list prints the known vocabulary
names instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assets, locale, err := flags.load(cmd)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if list {
				return enc.Encode(assets.Vocabularies.Names())
			}

			terms, err := assets.Vocabularies.Vocabulary(name)
			if err != nil {
				return fmt.Errorf("options: %w", err)
			}
			groups := optgroups.Search(terms, query, limit,
				optgroups.TranslatedLabels(locale, assets.Catalog),
				optgroups.DefaultOptions(),
			)
			if groups == nil {
				groups = []optgroups.Group{}
			}
			return enc.Encode(groups)
		},
	}

	cmd.Flags().StringVar(&name, "vocabulary", food.VocabularyName, "Vocabulary name")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive filter")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of options (component default when 0)")
	cmd.Flags().BoolVar(&list, "list", false, "List vocabulary names")
	return cmd
}
