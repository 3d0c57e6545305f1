package main

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-slidedeck/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "SLIDEDECK_"

// envConfig holds configuration from environment variables.
// Variables may also come from a .env file in the working directory.
type envConfig struct {
	ConfigPath string        // SLIDEDECK_CONFIG: config name or path
	Checkout   string        // SLIDEDECK_CHECKOUT: git checkout read for tags
	Output     string        // SLIDEDECK_OUTPUT: final PDF path
	Style      string        // SLIDEDECK_STYLE: stylesheet name
	AssetPath  string        // SLIDEDECK_ASSET_PATH: asset override directory
	Timeout    time.Duration // SLIDEDECK_TIMEOUT: browser timeout

	Title     string // SLIDEDECK_TITLE
	Author    string // SLIDEDECK_AUTHOR
	Event     string // SLIDEDECK_EVENT
	LastEvent string // SLIDEDECK_LAST_EVENT: date or "auto"
	ThisEvent string // SLIDEDECK_THIS_EVENT: date or "auto"
}

// knownEnvVars lists valid SLIDEDECK_* environment variables.
var knownEnvVars = map[string]bool{
	"SLIDEDECK_CONFIG":     true,
	"SLIDEDECK_CHECKOUT":   true,
	"SLIDEDECK_OUTPUT":     true,
	"SLIDEDECK_STYLE":      true,
	"SLIDEDECK_ASSET_PATH": true,
	"SLIDEDECK_TIMEOUT":    true,
	"SLIDEDECK_TITLE":      true,
	"SLIDEDECK_AUTHOR":     true,
	"SLIDEDECK_EVENT":      true,
	"SLIDEDECK_LAST_EVENT": true,
	"SLIDEDECK_THIS_EVENT": true,
}

// loadEnvConfig reads the SLIDEDECK_* variables. An unparsable timeout is
// ignored.
func loadEnvConfig() *envConfig {
	env := &envConfig{
		ConfigPath: os.Getenv("SLIDEDECK_CONFIG"),
		Checkout:   os.Getenv("SLIDEDECK_CHECKOUT"),
		Output:     os.Getenv("SLIDEDECK_OUTPUT"),
		Style:      os.Getenv("SLIDEDECK_STYLE"),
		AssetPath:  os.Getenv("SLIDEDECK_ASSET_PATH"),
		Title:      os.Getenv("SLIDEDECK_TITLE"),
		Author:     os.Getenv("SLIDEDECK_AUTHOR"),
		Event:      os.Getenv("SLIDEDECK_EVENT"),
		LastEvent:  os.Getenv("SLIDEDECK_LAST_EVENT"),
		ThisEvent:  os.Getenv("SLIDEDECK_THIS_EVENT"),
	}
	if timeout := os.Getenv("SLIDEDECK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			env.Timeout = d
		}
	}
	return env
}

// warnUnknownEnvVars logs unrecognized SLIDEDECK_* variables, which are
// usually typos.
func warnUnknownEnvVars(logger *log.Logger) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig copies set variables over the config.
// Precedence: flags > environment > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Talk.Checkout, env.Checkout)
	set(&cfg.Talk.Title, env.Title)
	set(&cfg.Talk.Author, env.Author)
	set(&cfg.Talk.Event, env.Event)
	set(&cfg.Events.Last, env.LastEvent)
	set(&cfg.Events.This, env.ThisEvent)
	set(&cfg.Output.Final, env.Output)
	set(&cfg.Style.CSS, env.Style)
	set(&cfg.Assets.BasePath, env.AssetPath)
	if env.Timeout > 0 {
		cfg.Browser.Timeout = env.Timeout.String()
	}
}
