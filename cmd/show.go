package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sail-dex/pokedex/internal/utils"
	"github.com/sail-dex/pokedex/pkg/detail"
	"github.com/sail-dex/pokedex/pkg/forms"
	"github.com/sail-dex/pokedex/pkg/pokeapi"
	"github.com/sail-dex/pokedex/pkg/roster"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the details of one species",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, _ := cmd.Flags().GetString("tab")
		shiny, _ := cmd.Flags().GetBool("shiny")

		api, err := newAPI()
		if err != nil {
			return err
		}

		ctx := context.Background()
		name := strings.ToLower(strings.TrimSpace(args[0]))
		page, err := detail.NewResolver(api, utils.Log).Load(ctx, name)
		if page == nil {
			if errors.Is(err, pokeapi.ErrNotFound) {
				return notFound(ctx, api, name)
			}
			return err
		}
		if err != nil {
			utils.Log.Warnf("Some details could not be loaded: %v", err)
		}

		printPage(cmd.OutOrStdout(), page, tab, shiny)
		return nil
	},
}

// notFound builds the error for an unknown name, with close roster names as
// suggestions when the roster can be loaded.
func notFound(ctx context.Context, api pokeapi.API, name string) error {
	dir, err := roster.Load(ctx, api, viper.GetInt("api.limit"))
	if err != nil {
		utils.Log.Debugf("No suggestions: %v", err)
		return fmt.Errorf("pokemon %q not found", name)
	}
	if s := dir.Suggest(name, 3); len(s) > 0 {
		return fmt.Errorf("pokemon %q not found, did you mean: %s", name, strings.Join(s, ", "))
	}
	return fmt.Errorf("pokemon %q not found", name)
}

func printPage(w io.Writer, p *detail.Page, tabKey string, shiny bool) {
	rec := p.Record
	active := forms.ActiveTab(p.Tabs, tabKey)
	art := forms.Select(rec.ID, active, rec.Name, rec.Sprites.FrontShiny != "", shiny)

	chain := make([]string, len(p.Chain))
	for i, c := range p.Chain {
		chain[i] = c.Name
	}

	fmt.Fprintf(w, "%s #%s\n", utils.DisplayName(rec.Name), utils.PadID(rec.ID))
	fmt.Fprintf(w, "Type:      %s\n", strings.Join(rec.Types, ", "))
	fmt.Fprintf(w, "Height:    %s\n", utils.FormatTenths(rec.Height, "m"))
	fmt.Fprintf(w, "Weight:    %s\n", utils.FormatTenths(rec.Weight, "kg"))
	fmt.Fprintf(w, "Abilities: %s\n", strings.Join(rec.Abilities, ", "))
	fmt.Fprintf(w, "Forms:     %s\n", strings.Join(forms.Keys(p.Tabs), ", "))
	fmt.Fprintf(w, "Artwork:   %s\n", art)
	if len(chain) > 0 {
		fmt.Fprintf(w, "Evolution: %s\n", strings.Join(chain, " > "))
	}
	if p.FlavorText != "" {
		fmt.Fprintf(w, "\n%s\n", p.FlavorText)
	}
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().String("tab", forms.BaseKey, "Form tab whose artwork is shown (see pokedex forms)")
	showCmd.Flags().Bool("shiny", false, "Show the shiny artwork when there is one")
}
