package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sail-dex/pokedex/pkg/forms"
	"github.com/spf13/cobra"
)

var formsCmd = &cobra.Command{
	Use:   "forms <name|id>",
	Short: "List the artwork tabs of a species",
	Long: `Print one line per form tab: key, label, normal artwork URL and shiny artwork URL
("-" when the form has no shiny art).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}

		rec, err := api.Pokemon(context.Background(), strings.ToLower(strings.TrimSpace(args[0])))
		if err != nil {
			return err
		}

		_, delimiter := outputFlags()
		hasShiny := rec.Sprites.FrontShiny != ""
		for _, t := range forms.TabsFor(rec.ID, strings.ToLower(rec.SpeciesName)) {
			shiny := forms.ShinyArt(t, rec.Name, hasShiny)
			if shiny == "" {
				shiny = "-"
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join([]string{t.Key, t.Label, forms.NormalArt(rec.ID, t), shiny}, delimiter))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formsCmd)
}
