package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configName is the config file name without extension.
const configName = ".pinormal"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for pinormal settings.
const envPrefix = "PINORMAL"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Load loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("engine.start_batch_terms", DefaultStartBatchTerms)
	viperCfg.SetDefault("engine.max_batch_terms", DefaultMaxBatchTerms)
	viperCfg.SetDefault("engine.guard_digits", DefaultGuardDigits)
	viperCfg.SetDefault("engine.max_digits", DefaultMaxDigits)

	viperCfg.SetDefault("stats.history_cap", DefaultHistoryCap)
	viperCfg.SetDefault("stats.recent_window", DefaultRecentWindow)
	viperCfg.SetDefault("stats.first_window", DefaultFirstWindow)

	viperCfg.SetDefault("display.refresh_ms", DefaultRefreshMS)
	viperCfg.SetDefault("display.no_color", false)

	viperCfg.SetDefault("metrics.listen_addr", "")
}

// WriteDefault writes the default configuration as YAML, used by the
// `config init` command to seed a starting file.
func WriteDefault(w io.Writer) error {
	enc := yaml.NewEncoder(w)

	encodeErr := enc.Encode(DefaultConfig())
	if encodeErr != nil {
		return fmt.Errorf("encode default config: %w", encodeErr)
	}

	closeErr := enc.Close()
	if closeErr != nil {
		return fmt.Errorf("flush default config: %w", closeErr)
	}

	return nil
}
