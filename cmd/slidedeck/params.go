package main

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	slidedeck "github.com/alnah/go-slidedeck"
	"github.com/alnah/go-slidedeck/internal/config"
	"github.com/alnah/go-slidedeck/internal/fontcheck"
	"github.com/alnah/go-slidedeck/internal/talk"
)

// defaultConfigName is looked up when neither --config nor
// SLIDEDECK_CONFIG is given. Its absence is not an error.
const defaultConfigName = "slidedeck"

// loadConfig reads the config file, then applies the environment.
// It returns the path of the file read, or "" when the defaults were used.
func loadConfig(name string, env *envConfig, logger *log.Logger) (*config.Config, string, error) {
	if name == "" {
		name = env.ConfigPath
	}

	var path string
	if name != "" {
		p, err := config.Resolve(name)
		if err != nil {
			return nil, "", err
		}
		path = p
	} else if p, err := config.Resolve(defaultConfigName); err == nil {
		path = p
	} else if !errors.Is(err, config.ErrConfigNotFound) {
		return nil, "", err
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, "", err
		}
		cfg = loaded
		logger.Debug("loaded config", "path", path)
	} else {
		logger.Debug("no config file, using defaults")
	}

	applyEnvConfig(env, cfg)
	return cfg, path, nil
}

// configure loads the config and applies checkout, environment and flags,
// then validates the result.
func configure(common *commonFlags, args []string, merge func(*config.Config), logger *log.Logger) (*config.Config, string, error) {
	cfg, path, err := loadConfig(common.config, loadEnvConfig(), logger)
	if err != nil {
		return nil, "", err
	}
	if len(args) > 0 {
		cfg.Talk.Checkout = args[0]
	}
	if merge != nil {
		merge(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// buildParams is everything a build needs once config, environment and
// flags are merged.
type buildParams struct {
	talk      talk.Config
	style     *slidedeck.Style
	meta      slidedeck.Metadata
	opts      []slidedeck.Option
	draft     string
	final     string
	html      string
	linearize bool
}

// resolveParams turns a validated config into build inputs.
func resolveParams(cfg *config.Config, fonts *fontcheck.Selection, now time.Time) (*buildParams, error) {
	last, this, err := cfg.EventDates(now)
	if err != nil {
		return nil, err
	}

	st := newStyle(cfg.Style, fonts)
	if err := st.Validate(); err != nil {
		return nil, err
	}

	opts := []slidedeck.Option{slidedeck.WithStyleName(cfg.Style.CSS)}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, slidedeck.WithAssetPath(cfg.Assets.BasePath))
	}
	if d := cfg.Timeout(); d > 0 {
		opts = append(opts, slidedeck.WithTimeout(d))
	}

	return &buildParams{
		talk: talk.Config{
			Checkout:    cfg.Talk.Checkout,
			Title:       cfg.Talk.Title,
			Author:      cfg.Talk.Author,
			Event:       cfg.Talk.Event,
			LastEvent:   last,
			ThisEvent:   this,
			WindowYears: cfg.Events.WindowYears,
			Timeline:    cfg.TimelineParams(),
			Links:       cfg.Talk.Links,
			DemoURL:     cfg.Talk.DemoURL,
			Image:       cfg.Talk.Image,
		},
		style: st,
		meta: slidedeck.Metadata{
			Author:   cfg.Talk.Author,
			Title:    cfg.Talk.Title,
			Subject:  cfg.Talk.Event,
			Keywords: cfg.Talk.Keywords,
			Creator:  "slidedeck " + Version,
			Created:  now,
		},
		opts:      opts,
		draft:     cfg.Output.Draft,
		final:     cfg.Output.Final,
		html:      cfg.Output.HTML,
		linearize: cfg.Output.Linearize,
	}, nil
}

// newStyle applies config overrides and the selected fonts to the default
// style. Zero values keep the default.
func newStyle(sc config.StyleConfig, fonts *fontcheck.Selection) *slidedeck.Style {
	st := slidedeck.DefaultStyle()
	if sc.FontSize > 0 {
		st.FontSize = sc.FontSize
	}
	if sc.HeadingSize > 0 {
		st.HeadingSize = sc.HeadingSize
	}
	if sc.CodeSize > 0 {
		st.CodeSize = sc.CodeSize
	}
	if sc.TextColor != "" {
		st.TextColor = sc.TextColor
	}
	if sc.HeadingColor != "" {
		st.HeadingColor = sc.HeadingColor
	}
	if sc.CodeTheme != "" {
		st.CodeTheme = sc.CodeTheme
	}

	if fonts == nil {
		return st
	}
	// The text font replaces the head of the stack; fallbacks stay.
	family := []string{fonts.TextFont.Family}
	if len(st.FontFamily) > 1 {
		family = append(family, st.FontFamily[1:]...)
	}
	st.FontFamily = family
	st.LogoFontFamily = fonts.LogoFont.Family
	for _, f := range fonts.Faces() {
		st.Fonts = append(st.Fonts, slidedeck.FontFace{Family: f.Family, Path: f.Path, Weight: st.FontWeight})
	}
	return st
}

// changedFlags wraps a flag set for merge callbacks.
func changedFlags(fs *pflag.FlagSet, f *buildFlags) func(*config.Config) {
	return func(cfg *config.Config) { mergeBuildFlags(fs, f, cfg) }
}
