// Package config loads quoteform-cli settings from an optional file,
// QUOTEFORM_* environment variables and command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. QUOTEFORM_LOG_LEVEL.
const EnvPrefix = "QUOTEFORM"

// Modes accepted by the mode key.
const (
	ModeTUI      = "tui"
	ModeHTML     = "html"
	ModeOpenAPI  = "openapi"
	ModeValidate = "validate"
)

var (
	// ErrInvalidMode reports an unsupported mode value.
	ErrInvalidMode = errors.New("config: invalid mode")
	// ErrInvalidLogFormat reports an unsupported log.format value.
	ErrInvalidLogFormat = errors.New("config: invalid log format")
	// ErrMissingInput reports validate mode without an input file.
	ErrMissingInput = errors.New("config: validate mode requires input")
)

// Config is the resolved CLI configuration.
type Config struct {
	Mode       string `mapstructure:"mode"`
	Form       string `mapstructure:"form"`
	SchemaDir  string `mapstructure:"schema_dir"`
	Input      string `mapstructure:"input"`
	Output     string `mapstructure:"output"`
	Format     string `mapstructure:"format"`
	Action     string `mapstructure:"action"`
	APITitle   string `mapstructure:"api_title"`
	APIVersion string `mapstructure:"api_version"`
	Log        Log    `mapstructure:"log"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", ModeTUI)
	v.SetDefault("form", "request")
	v.SetDefault("schema_dir", "")
	v.SetDefault("input", "")
	v.SetDefault("output", "")
	v.SetDefault("format", "json")
	v.SetDefault("action", "")
	v.SetDefault("api_title", "Glulam quote forms")
	v.SetDefault("api_version", "1.0.0")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Flags registers the command-line flags that override file and environment
// values. Flag names use dashes; log settings are log-level and log-format.
func Flags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "config file (yaml, json or toml)")
	fs.StringP("mode", "m", ModeTUI, "tui | html | openapi | validate")
	fs.StringP("form", "f", "request", "form name")
	fs.String("schema-dir", "", "directory of form documents (yaml/json)")
	fs.StringP("input", "i", "", "JSON record file for validate mode, or prefill for tui")
	fs.StringP("output", "o", "", "output file (stdout if empty)")
	fs.String("format", "json", "tui output format (json | form | pretty) or openapi format (json | yaml)")
	fs.String("action", "", "form action URL for html mode")
	fs.String("api-title", "Glulam quote forms", "OpenAPI info.title")
	fs.String("api-version", "1.0.0", "OpenAPI info.version")
	fs.String("log-level", "info", "debug | info | warn | error")
	fs.String("log-format", "text", "text | json")
}

var flagKeys = map[string]string{
	"mode":        "mode",
	"form":        "form",
	"schema-dir":  "schema_dir",
	"input":       "input",
	"output":      "output",
	"format":      "format",
	"action":      "action",
	"api-title":   "api_title",
	"api-version": "api_version",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

// Load resolves configuration with precedence flags > environment > file >
// defaults. Only flags the user set override lower layers. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := newViper()

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Config{}, fmt.Errorf("config: bind flag %s: %w", name, err)
			}
		}
		if path, err := fs.GetString("config"); err == nil && path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("config: read %s: %w", path, err)
			}
		}
	}

	return decode(v)
}

// LoadBytes resolves configuration from an in-memory document of configType
// (yaml, json, toml) layered over defaults and the environment.
func LoadBytes(configType string, data []byte) (Config, error) {
	if strings.TrimSpace(configType) == "" {
		return Config{}, errors.New("config: config type is required")
	}
	v := newViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", configType, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeTUI, ModeHTML, ModeOpenAPI:
	case ModeValidate:
		if strings.TrimSpace(c.Input) == "" {
			return ErrMissingInput
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}
	return nil
}
