package cmd

import (
	"context"
	"fmt"

	"github.com/sail-dex/pokedex/pkg/dictionary"
	"github.com/spf13/cobra"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Print the type and region vocabularies used by the filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}

		// whatever loaded is printed even when the other half failed
		d, err := dictionary.Load(context.Background(), api)
		_, delimiter := outputFlags()
		for _, e := range d.Types {
			fmt.Fprintf(cmd.OutOrStdout(), "type%s%s%s%s\n", delimiter, e.Name, delimiter, e.Label)
		}
		for _, e := range d.Regions {
			fmt.Fprintf(cmd.OutOrStdout(), "region%s%s%s%s\n", delimiter, e.Name, delimiter, e.Label)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(dictCmd)
}
