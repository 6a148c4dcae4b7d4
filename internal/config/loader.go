// Package config loads identifier tooling configuration from YAML files and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/sufield/identifiers/pkg/correctness"
	"github.com/sufield/identifiers/pkg/identifiers"
)

// EnvPrefix is prepended to every environment override, e.g.
// IDENTIFIERS_VALIDATION_MAX_LENGTH.
const EnvPrefix = "IDENTIFIERS"

// ErrInvalidConfiguration is wrapped by every validation failure from Load.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Configuration is the full tool configuration.
type Configuration struct {
	Validation correctness.Rules         `mapstructure:"validation" yaml:"validation"`
	Log        LogConfig                 `mapstructure:"log" yaml:"log"`
	Components []identifiers.ComponentID `mapstructure:"components" yaml:"components"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// GetDefault returns a configuration with sensible defaults.
func GetDefault() *Configuration {
	return &Configuration{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path, if any, and applies environment
// overrides. An empty path loads defaults plus environment only.
func Load(path string) (*Configuration, error) {
	v := viper.New()

	defaults := GetDefault()
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("validation.max_length", 0)
	v.SetDefault("validation.pattern", "")
	v.SetDefault("validation.tag", "")
	// Unmarshal only sees keys viper knows about, so components needs a
	// default for IDENTIFIERS_COMPONENTS to apply.
	v.SetDefault("components", []string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Configuration{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		componentListHook(","),
		identifiers.ComponentIDDecodeHook(),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// componentListHook splits a separated string, as found in
// IDENTIFIERS_COMPONENTS, into the elements of a []ComponentID.
// mapstructure.StringToSliceHookFunc only targets []string.
func componentListHook(sep string) mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf([]identifiers.ComponentID{})
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != target {
			return data, nil
		}
		raw, ok := data.(string)
		if !ok {
			return data, nil
		}
		if strings.TrimSpace(raw) == "" {
			return []string{}, nil
		}
		parts := strings.Split(raw, sep)
		for i, part := range parts {
			parts[i] = strings.TrimSpace(part)
		}
		return parts, nil
	}
}

// Validate checks field constraints and that the validation rules compile.
func (c *Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if _, err := correctness.NewRuleChecker(c.Validation); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return nil
}

// Checker returns the predicate described by the validation rules, or nil
// when the built-in predicate applies unchanged.
func (c *Configuration) Checker() (correctness.Checker, error) {
	if c.Validation.IsZero() {
		return nil, nil
	}
	checker, err := correctness.NewRuleChecker(c.Validation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return checker, nil
}
