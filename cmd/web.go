package cmd

import (
	"context"

	"github.com/sail-dex/pokedex/internal/server"
	"github.com/sail-dex/pokedex/internal/utils"
	"github.com/sail-dex/pokedex/pkg/dictionary"
	"github.com/sail-dex/pokedex/pkg/roster"
	"github.com/sail-dex/pokedex/pkg/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// webCmd represents the web command
var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the pokedex web interface",
	Long:  `Start a web server with the filterable species list and the detail pages.`,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("bind")

		api, err := newAPI()
		if err != nil {
			utils.Log.Fatalf("Failed to build API client: %v", err)
		}

		ctx := context.Background()
		dir, err := roster.Load(ctx, api, viper.GetInt("api.limit"))
		if err != nil {
			utils.Log.Fatalf("Failed to load species directory: %v", err)
		}
		utils.Log.Infof("Loaded %d species", dir.Len())

		// the list still works without vocabularies; the page shows a banner
		dicts, dictsErr := dictionary.Load(ctx, api)
		if dictsErr != nil {
			utils.Log.Warnf("Failed to load filter vocabularies: %v", dictsErr)
		}

		store, err := session.OpenStore()
		if err != nil {
			utils.Log.Fatalf("Failed to open session store: %v", err)
		}
		defer store.Close()

		srv := server.New(api, dir, dicts, dictsErr, store, utils.Log)
		if err := srv.Start(addr); err != nil {
			utils.Log.Fatalf("Server failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(webCmd)

	webCmd.Flags().StringP("bind", "b", ":9999", "Address to bind the server to")
}
