package cmd

import (
	"time"

	"github.com/sail-dex/pokedex/internal/utils"
	"github.com/sail-dex/pokedex/pkg/pokeapi"
	"github.com/sail-dex/pokedex/pkg/pokeapi/pokeapitest"
	"github.com/sail-dex/pokedex/pkg/whttp"
	"github.com/spf13/viper"
)

// newAPI returns the creature API configured by flags and config: the
// built-in sample data with --demo, the network client otherwise.
func newAPI() (pokeapi.API, error) {
	if viper.GetBool("demo") {
		utils.Log.Debug("Using built-in sample data")
		return pokeapitest.Kanto(), nil
	}

	httpClient, err := whttp.NewClient(whttp.ClientOptions{
		RetryMax: viper.GetInt("api.retries"),
		Timeout:  time.Duration(viper.GetInt("api.timeout")) * time.Second,
		Proxy:    viper.GetString("proxy"),
		Logger:   utils.Log,
	})
	if err != nil {
		return nil, err
	}
	return pokeapi.NewClient(viper.GetString("api.base"), httpClient, utils.Log), nil
}

func outputFlags() (string, string) {
	output, _ := rootCmd.PersistentFlags().GetString("output")
	delimiter, _ := rootCmd.PersistentFlags().GetString("delimiter")
	return output, delimiter
}
