package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"article-mapper/internal/config"
	"article-mapper/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	appCfg  config.Config
)

// rootCmd is the base command called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "article-mapper",
	Short: "Article feed mapper",
	Long:  "Polls the article feed, normalizes every article with its media and emits the result.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

// envKeys are the settings that may be overridden from the environment,
// e.g. ARTICLE_MAPPER_REDIS_PASSWORD. List values such as sink.kinds are
// comma-separated: ARTICLE_MAPPER_SINK_KINDS=stdout,redis.
var envKeys = []string{
	"app.log_level", "app.log_format",
	"redis.addr", "redis.username", "redis.password", "redis.db",
	"source.list_url", "source.detail_url", "source.media_url", "source.timeout",
	"source.requests_per_second", "source.burst",
	"collector.interval", "collector.concurrency",
	"mapping.lenient_modification_date", "mapping.reject_unknown_media",
	"sink.kinds", "sink.format", "sink.redis_channel",
}

func initConfig() {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = ".env"
	}
	if err := loadDotEnv(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "error loading env file %s: %v\n", envPath, err)
		os.Exit(1)
	}

	cfg, err := loadConfig(viper.GetViper(), cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	appCfg = cfg

	logging.Setup(os.Stderr, appCfg.App.LogLevel, appCfg.App.LogFormat)
}

// loadConfig reads file (or config.yaml from the search paths when empty),
// applies environment overrides and defaults, and validates the result.
func loadConfig(v *viper.Viper, file string) (config.Config, error) {
	var cfg config.Config

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/article-mapper")
		v.AddConfigPath("configs")
	}

	v.SetEnvPrefix("ARTICLE_MAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return cfg, fmt.Errorf("error reading config: %w", err)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	// comma-separated strings from the environment become slices here
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads path into the environment without overriding variables
// already set. A missing file is not an error. It runs before logging is
// configured, so failures are returned rather than logged.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// GetConfig exposes the loaded configuration to subcommands.
func GetConfig() config.Config {
	return appCfg
}
