// SPDX-License-Identifier: EPL-2.0

// Package config loads CLI settings from defaults, an optional rauditor.yaml
// and RAUDITOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ik5/rauditor/decoder"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	ErrInvalidLogFormat   = errors.New("config: invalid log format")
	ErrInvalidResetPolicy = errors.New("config: invalid reset policy")
	ErrInvalidValue       = errors.New("config: value must be positive")
)

// Config is the resolved configuration.
type Config struct {
	LogLevel     logrus.Level
	LogFormat    string
	ExportRate   int
	ExportBuffer int
	ViewBuckets  int
	ViewSamples  int
	ResetPolicy  decoder.ResetPolicy

	// File is the config file that was read, empty when none was found.
	File string
}

// New returns a viper instance with defaults, env bindings and the config
// search path set. Nothing is read yet.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("export.rate", 16000)
	v.SetDefault("export.buffer", 4096)
	v.SetDefault("view.buckets", 80)
	v.SetDefault("view.samples", 1000)
	v.SetDefault("decode.reset_policy", "reselect")

	v.SetEnvPrefix("RAUDITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("rauditor")
	v.SetConfigType("yaml")

	configPaths := []string{
		".",
		"$HOME/.config/rauditor",
		"/etc/rauditor",
	}

	for _, path := range configPaths {
		v.AddConfigPath(os.ExpandEnv(path))
	}

	return v
}

// Load reads the config file if one exists and resolves v into a Config.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return Config{}, fmt.Errorf("log.level: %w", err)
	}

	format := strings.ToLower(v.GetString("log.format"))
	if format != "text" && format != "json" {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidLogFormat, format)
	}

	policy, ok := decoder.ParseResetPolicy(v.GetString("decode.reset_policy"))
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidResetPolicy, v.GetString("decode.reset_policy"))
	}

	cfg := Config{
		LogLevel:     level,
		LogFormat:    format,
		ExportRate:   v.GetInt("export.rate"),
		ExportBuffer: v.GetInt("export.buffer"),
		ViewBuckets:  v.GetInt("view.buckets"),
		ViewSamples:  v.GetInt("view.samples"),
		ResetPolicy:  policy,
		File:         v.ConfigFileUsed(),
	}

	for key, n := range map[string]int{
		"export.rate":   cfg.ExportRate,
		"export.buffer": cfg.ExportBuffer,
		"view.buckets":  cfg.ViewBuckets,
		"view.samples":  cfg.ViewSamples,
	} {
		if n <= 0 {
			return Config{}, fmt.Errorf("%w: %s = %d", ErrInvalidValue, key, n)
		}
	}

	return cfg, nil
}

// Logger builds a logger from the log settings.
func (c Config) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(c.LogLevel)

	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}
