package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arcdb/arcdb-go"
)

// arcdb-cli config.toml key mapping to client Options.
type fileConfig struct {
	Addr        string `toml:"addr"`
	Database    string `toml:"database"`
	DialTimeout string `toml:"dial_timeout"`
	LogLevel    string `toml:"log_level"`
	Tracing     bool   `toml:"tracing"`
}

type cliConfig struct {
	Options  arcdb.Options
	LogLevel string
}

// loadConfig overlays config.toml on top of defaults; absent keys keep
// their default values.
func loadConfig(path string) (cliConfig, error) {
	cfg := cliConfig{
		Options:  arcdb.Options{Addr: []string{"127.0.0.1:7171"}},
		LogLevel: "warn",
	}
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("addr") {
		cfg.Options.Addr = []string{strings.TrimSpace(raw.Addr)}
	}
	if meta.IsDefined("database") {
		cfg.Options.Database = strings.TrimSpace(raw.Database)
	}
	if meta.IsDefined("dial_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.DialTimeout))
		if err != nil {
			return cliConfig{}, fmt.Errorf("load config: dial_timeout: %w", err)
		}
		cfg.Options.DialTimeout = d
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	if meta.IsDefined("tracing") {
		cfg.Options.EnableTracing = raw.Tracing
	}
	return cfg, nil
}
