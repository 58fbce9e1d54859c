package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sail-dex/pokedex/internal/utils"
	"github.com/sail-dex/pokedex/pkg/pokeapi"
	"github.com/sail-dex/pokedex/pkg/whttp"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `                 _          _
	 _ __   ___ | | _____  __| | _____  __
	| '_ \ / _ \| |/ / _ \/ _' |/ _ \ \/ /
	| |_) | (_) |   <  __/ (_| |  __/>  <
	| .__/ \___/|_|\_\___|\__,_|\___/_/\_\
	|_|
`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Browse the PokeAPI species catalog.",
	Long: LOGO + `pokedex lists, filters and inspects species from the public PokeAPI,
right from your command line or in the browser (pokedex web).`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pokedex.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("api-base", pokeapi.DefaultBaseURL, "PokeAPI base URL")
	rootCmd.PersistentFlags().Bool("demo", false, "Use the built-in sample data instead of the network")
	rootCmd.PersistentFlags().StringP("output", "o", "n", "Output flags. Supported: n (name), i (id), u (API url), s (sprite url). Example: -o ni")
	rootCmd.PersistentFlags().StringP("delimiter", "d", " ", "Delimiter character to use for output")

	viper.BindPFlag("proxy", rootCmd.PersistentFlags().Lookup("proxy"))
	viper.BindPFlag("api.base", rootCmd.PersistentFlags().Lookup("api-base"))
	viper.BindPFlag("demo", rootCmd.PersistentFlags().Lookup("demo"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("api.base", pokeapi.DefaultBaseURL)
	viper.SetDefault("api.limit", pokeapi.DefaultRosterLimit)
	viper.SetDefault("api.timeout", 15)
	viper.SetDefault("api.retries", whttp.DefaultRetryMax)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".pokedex")
		viper.SetConfigType("yaml")
	}

	// POKEDEX_API_RETRIES overrides api.retries
	viper.SetEnvPrefix("pokedex")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.pokedex.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				utils.Log.Debugf("Error creating config file: %s", err)
			}
		} else {
			utils.Log.Debugf("Config file not read: %s", err)
		}
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	if err := utils.SetLogLevel(levelString); err != nil {
		utils.Log.Warn(err)
	}
}
