package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pyrs-lang/pyrs/pyrs"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const defaultHistoryFile = ".pyrs_history"

// fileConfig is the on-disk shape of a --config file.
type fileConfig struct {
	Scoping          string `yaml:"scoping"`
	RecursionLimit   int    `yaml:"recursion_limit"`
	StepQuota        int    `yaml:"step_quota"`
	MemoryQuotaBytes int    `yaml:"memory_quota_bytes"`
	LogLevel         string `yaml:"log_level"`
	HistoryFile      string `yaml:"history_file"`
}

// settings is the merged result of the config file and command-line flags.
type settings struct {
	engine      pyrs.Config
	historyFile string
}

func loadConfigFile(path string) (fileConfig, error) {
	var cfg fileConfig
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// resolveSettings layers explicitly set flags (or their environment
// variables) over the config file.
func resolveSettings(c *cli.Context) (settings, error) {
	var file fileConfig
	if path := c.String("config"); path != "" {
		loaded, err := loadConfigFile(path)
		if err != nil {
			return settings{}, err
		}
		file = loaded
	}

	scoping := file.Scoping
	if c.IsSet("scoping") {
		scoping = c.String("scoping")
	}
	mode, err := pyrs.ParseScopeMode(scoping)
	if err != nil {
		return settings{}, err
	}

	cfg := pyrs.Config{
		Stdout:           c.App.Writer,
		Scoping:          mode,
		RecursionLimit:   file.RecursionLimit,
		StepQuota:        file.StepQuota,
		MemoryQuotaBytes: file.MemoryQuotaBytes,
	}
	if c.IsSet("recursion-limit") {
		cfg.RecursionLimit = c.Int("recursion-limit")
	}
	if c.IsSet("step-quota") {
		cfg.StepQuota = c.Int("step-quota")
	}
	if c.IsSet("memory-quota") {
		cfg.MemoryQuotaBytes = c.Int("memory-quota")
	}

	levelName := file.LogLevel
	if c.IsSet("log-level") || levelName == "" {
		levelName = c.String("log-level")
	}
	level, err := log.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return settings{}, fmt.Errorf("config: %w", err)
	}
	cfg.Logger = newLogger(c.App.ErrWriter, level)

	history := file.HistoryFile
	if history == "" {
		if home, err := os.UserHomeDir(); err == nil {
			history = filepath.Join(home, defaultHistoryFile)
		}
	}

	return settings{engine: cfg, historyFile: history}, nil
}

func newLogger(w io.Writer, level log.Level) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "pyrs",
	})
	return slog.New(handler)
}

func newEngine(c *cli.Context) (*pyrs.Engine, settings, error) {
	s, err := resolveSettings(c)
	if err != nil {
		return nil, s, err
	}
	engine, err := pyrs.NewEngine(s.engine)
	if err != nil {
		return nil, s, err
	}
	return engine, s, nil
}
