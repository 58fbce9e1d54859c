package cmd

import (
	"context"

	"github.com/sail-dex/pokedex/internal/utils"
	"github.com/sail-dex/pokedex/pkg/filter"
	"github.com/sail-dex/pokedex/pkg/roster"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List species matching the given filters",
	Long: `List every species of the roster, narrowed by name, type, region and form group.
All filters are combined.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		typeName, _ := cmd.Flags().GetString("type")
		region, _ := cmd.Flags().GetString("region")
		form, _ := cmd.Flags().GetString("form")

		group, err := filter.ParseFormGroup(form)
		if err != nil {
			return err
		}

		api, err := newAPI()
		if err != nil {
			return err
		}

		ctx := context.Background()
		dir, err := roster.Load(ctx, api, viper.GetInt("api.limit"))
		if err != nil {
			return err
		}

		criteria := filter.Criteria{NameQuery: name, TypeName: typeName, RegionName: region, FormGroup: group}
		refs, err := filter.Resolve(ctx, dir, criteria, api)
		if err != nil {
			return err
		}
		utils.Log.Debugf("%d of %d species match %+v", len(refs), dir.Len(), criteria)

		output, delimiter := outputFlags()
		return roster.PrintSpecies(cmd.OutOrStdout(), refs, output, delimiter)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("name", "n", "", "Only species whose name contains this text")
	listCmd.Flags().StringP("type", "t", "", "Only species of this type (e.g. fire)")
	listCmd.Flags().StringP("region", "r", "", "Only species introduced in this generation (e.g. generation-i)")
	listCmd.Flags().StringP("form", "f", "", "Only species with a form of this group (mega, alolan, galarian, hisuian)")
}
