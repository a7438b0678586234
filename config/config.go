// Package config loads jsonlogic CLI settings from, in increasing order of
// precedence, built-in defaults, a .jsonlogic.yaml file, JSONLOGIC_*
// environment variables, and command-line flags.
package config

import (
	"errors"
	"io"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the settings the cmd package needs before it can build a
// rule.Rule or a topdown.Evaluator.
type Config struct {
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	Extensions   bool   `mapstructure:"extensions" yaml:"extensions"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat    string `mapstructure:"log_format" yaml:"log_format"`
}

const envPrefix = "jsonlogic"

func defaults() Config {
	return Config{
		OutputFormat: "json",
		Extensions:   false,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load reads a .jsonlogic.yaml file from the current directory and any of
// searchPaths, then overlays JSONLOGIC_*-prefixed environment variables. A
// missing config file is not an error; a malformed one is.
func Load(searchPaths ...string) (Config, error) {
	d := defaults()
	v := viper.New()
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	v.SetConfigName(".jsonlogic")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return Config{}, err
	}
	return out, nil
}

// Dump writes cfg to w in the same .jsonlogic.yaml format Load reads,
// letting a caller inspect the effective, fully-resolved configuration.
func Dump(cfg Config, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(cfg)
}

// ApplyFlags overlays any flag the caller explicitly set on the command
// line, which wins over both the config file and the environment.
func ApplyFlags(cfg Config, flags *pflag.FlagSet) Config {
	if f := flags.Lookup("format"); f != nil && f.Changed {
		cfg.OutputFormat = f.Value.String()
	}
	if f := flags.Lookup("extensions"); f != nil && f.Changed {
		if v, err := flags.GetBool("extensions"); err == nil {
			cfg.Extensions = v
		}
	}
	if f := flags.Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = f.Value.String()
	}
	if f := flags.Lookup("log-format"); f != nil && f.Changed {
		cfg.LogFormat = f.Value.String()
	}
	return cfg
}
