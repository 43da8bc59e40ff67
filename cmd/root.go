package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jobscoutdev/jobscout/internal/profile"
)

const (
	app = "jobscout"
)

type Config struct {
	Profile *profile.Profile `mapstructure:"profile"`
	Sources *SourcesConfig   `mapstructure:"sources"`
	AI      *AIConfig        `mapstructure:"ai"`

	// AgencyDenylist overrides the built-in recruitment-agency list
	// used when profile.exclude-agencies is set.
	AgencyDenylist []string `mapstructure:"agency-denylist"`

	AdapterTimeout time.Duration `mapstructure:"adapter-timeout"`

	// DatabaseURL enables persistence of the ranked results; empty
	// skips the store.
	DatabaseURL string `mapstructure:"database-url"`
	// RedisURL enables publishing stage transitions for an external
	// poller; empty keeps progress in memory.
	RedisURL string `mapstructure:"redis-url"`
}

type SourcesConfig struct {
	Adzuna        *AdzunaConfig        `mapstructure:"adzuna"`
	Jooble        *JoobleConfig        `mapstructure:"jooble"`
	FranceTravail *FranceTravailConfig `mapstructure:"francetravail"`
	WTTJ          *WTTJConfig          `mapstructure:"wttj"`
}

type AdzunaConfig struct {
	AppIDFile  string `mapstructure:"app-id-file"`
	AppKeyFile string `mapstructure:"app-key-file"`
	Country    string `mapstructure:"country"`
}

type JoobleConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
}

type FranceTravailConfig struct {
	TokenFile string `mapstructure:"token-file"`
}

type WTTJConfig struct {
	AppID      string `mapstructure:"app-id"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type AIConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Provider      string        `mapstructure:"provider"`
	RerankTimeout time.Duration `mapstructure:"rerank-timeout"`
	Gemini        *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobscout aggregates, filters and ranks job postings from several boards for one candidate profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		cobra.CheckErr(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
