// Package config loads the talk configuration from a YAML or TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/alnah/go-slidedeck/internal/codec"
	"github.com/alnah/go-slidedeck/internal/dateutil"
	"github.com/alnah/go-slidedeck/internal/fileutil"
	"github.com/alnah/go-slidedeck/internal/timeline"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
	ErrNoCheckout      = errors.New("no checkout given")
)

// AppName is the directory searched under the user config directory.
const AppName = "go-slidedeck"

// Field length limits.
const (
	MaxTextLength = 200
	MaxURLLength  = 2048
	MaxLinks      = 4
)

// Config holds everything a build can be configured with.
type Config struct {
	Talk     TalkConfig     `yaml:"talk" toml:"talk"`
	Events   EventsConfig   `yaml:"events" toml:"events"`
	Timeline TimelineConfig `yaml:"timeline" toml:"timeline"`
	Style    StyleConfig    `yaml:"style" toml:"style"`
	Output   OutputConfig   `yaml:"output" toml:"output"`
	Assets   AssetsConfig   `yaml:"assets" toml:"assets"`
	Browser  BrowserConfig  `yaml:"browser" toml:"browser"`
}

// TalkConfig is the content of the talk.
type TalkConfig struct {
	Checkout string   `yaml:"checkout" toml:"checkout"` // git checkout read for tags
	Title    string   `yaml:"title" toml:"title"`
	Author   string   `yaml:"author" toml:"author"`
	Event    string   `yaml:"event" toml:"event"`
	Keywords string   `yaml:"keywords" toml:"keywords"`
	DemoURL  string   `yaml:"demoURL" toml:"demoURL"`
	Links    []string `yaml:"links" toml:"links"` // gallery pages, one QR code each
	Image    string   `yaml:"image" toml:"image"` // image asset name
}

// EventsConfig places the talk on the release timeline.
type EventsConfig struct {
	Last        string `yaml:"last" toml:"last"` // date or "auto"
	This        string `yaml:"this" toml:"this"` // date or "auto"
	DateFormat  string `yaml:"dateFormat" toml:"dateFormat"`
	WindowYears int    `yaml:"windowYears" toml:"windowYears"`
}

// TimelineConfig tunes the stem heights of the release history.
type TimelineConfig struct {
	Base      float64 `yaml:"base" toml:"base"`
	Scale     float64 `yaml:"scale" toml:"scale"`
	MaxMicro  int     `yaml:"maxMicro" toml:"maxMicro"`
	MinHeight float64 `yaml:"minHeight" toml:"minHeight"`
}

// StyleConfig overrides deck style constants. Zero values keep the default.
type StyleConfig struct {
	CSS          string  `yaml:"css" toml:"css"` // stylesheet name
	FontSize     float64 `yaml:"fontSize" toml:"fontSize"`
	HeadingSize  float64 `yaml:"headingSize" toml:"headingSize"`
	CodeSize     float64 `yaml:"codeSize" toml:"codeSize"`
	TextColor    string  `yaml:"textColor" toml:"textColor"`
	HeadingColor string  `yaml:"headingColor" toml:"headingColor"`
	CodeTheme    string  `yaml:"codeTheme" toml:"codeTheme"`
}

// OutputConfig names the files a build writes.
type OutputConfig struct {
	Draft     string `yaml:"draft" toml:"draft"` // PDF as printed
	Final     string `yaml:"final" toml:"final"` // linearized copy
	HTML      string `yaml:"html" toml:"html"`   // optional HTML dump
	Linearize bool   `yaml:"linearize" toml:"linearize"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" toml:"basePath"` // empty uses embedded assets
}

// BrowserConfig tunes the headless browser.
type BrowserConfig struct {
	Timeout string `yaml:"timeout" toml:"timeout"` // Go duration
}

// DefaultConfig returns the talk as presented at SciPy 2023. It names no
// checkout, so it does not validate until one is set.
func DefaultConfig() *Config {
	params := timeline.DefaultParams()
	return &Config{
		Talk: TalkConfig{
			Title:    "Slides in Matplotlib",
			Author:   "Elliott Sales de Andrade",
			Event:    "SciPy 2023",
			Keywords: "matplotlib, slides, scipy2023",
			DemoURL:  "https://github.com/QuLogic/scipy2023-lightning-mpl-slides",
			Links: []string{
				"https://matplotlib.org/stable/gallery/misc/logos2.html",
				"https://matplotlib.org/stable/gallery/lines_bars_and_markers/timeline.html",
			},
			Image: "sample",
		},
		Events: EventsConfig{
			Last:        "2023-07-12",
			This:        "2024-07-10",
			WindowYears: 5,
		},
		Timeline: TimelineConfig{
			Base:      params.Base,
			Scale:     params.Scale,
			MaxMicro:  params.MaxMicro,
			MinHeight: params.MinHeight,
		},
		Style: StyleConfig{CSS: "deck"},
		Output: OutputConfig{
			Draft:     "slides.pdf",
			Final:     "scipy2023-lightning-mpl-slide.pdf",
			Linearize: true,
		},
		Browser: BrowserConfig{Timeout: "30s"},
	}
}

// Validate checks a config ready to build from: a checkout must be set, by
// argument, environment or file, and every section must be valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Talk.Checkout) == "" {
		return fmt.Errorf("%w: talk.checkout: %w", ErrConfigInvalid, ErrNoCheckout)
	}
	return c.validateSections()
}

// validateSections checks every section and reports the first failure. A
// file may leave the checkout to the command line.
func (c *Config) validateSections() error {
	if err := validation.ValidateStruct(&c.Talk,
		validation.Field(&c.Talk.Title, validation.Required, validation.RuneLength(1, MaxTextLength)),
		validation.Field(&c.Talk.Author, validation.RuneLength(0, MaxTextLength)),
		validation.Field(&c.Talk.Event, validation.RuneLength(0, MaxTextLength)),
		validation.Field(&c.Talk.Keywords, validation.RuneLength(0, MaxTextLength)),
		validation.Field(&c.Talk.DemoURL, validation.Length(0, MaxURLLength), is.URL),
		validation.Field(&c.Talk.Links, validation.Length(0, MaxLinks),
			validation.Each(validation.Required, validation.Length(1, MaxURLLength), is.URL)),
	); err != nil {
		return fmt.Errorf("%w: talk: %v", ErrConfigInvalid, err)
	}

	date := validation.By(func(v any) error {
		_, err := dateutil.ParseDate(v.(string), c.Events.DateFormat, time.Now())
		return err
	})
	if err := validation.ValidateStruct(&c.Events,
		validation.Field(&c.Events.Last, date),
		validation.Field(&c.Events.This, date),
		validation.Field(&c.Events.WindowYears, validation.Required, validation.Min(1), validation.Max(50)),
	); err != nil {
		return fmt.Errorf("%w: events: %v", ErrConfigInvalid, err)
	}

	if err := c.TimelineParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	if err := validation.ValidateStruct(&c.Style,
		validation.Field(&c.Style.FontSize, validation.Min(0.0)),
		validation.Field(&c.Style.HeadingSize, validation.Min(0.0)),
		validation.Field(&c.Style.CodeSize, validation.Min(0.0)),
	); err != nil {
		return fmt.Errorf("%w: style: %v", ErrConfigInvalid, err)
	}

	if err := validation.ValidateStruct(&c.Output,
		validation.Field(&c.Output.Draft, validation.Required),
		validation.Field(&c.Output.Final, validation.Required,
			validation.NotIn(c.Output.Draft).Error("must differ from the draft")),
	); err != nil {
		return fmt.Errorf("%w: output: %v", ErrConfigInvalid, err)
	}

	if err := validation.Validate(c.Browser.Timeout, validation.By(func(v any) error {
		s := v.(string)
		if s == "" {
			return nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		if d <= 0 {
			return errors.New("must be positive")
		}
		return nil
	})); err != nil {
		return fmt.Errorf("%w: browser.timeout: %v", ErrConfigInvalid, err)
	}

	return nil
}

// EventDates resolves the previous and the current event.
func (c *Config) EventDates(now time.Time) (last, this time.Time, err error) {
	last, err = dateutil.ParseDate(c.Events.Last, c.Events.DateFormat, now)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: events.last: %w", ErrConfigInvalid, err)
	}
	this, err = dateutil.ParseDate(c.Events.This, c.Events.DateFormat, now)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: events.this: %w", ErrConfigInvalid, err)
	}
	if this.IsZero() {
		this, _ = dateutil.ParseDate("auto", "", now)
	}
	if !last.IsZero() && !last.Before(this) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: events.last (%s) must come before events.this (%s)",
			ErrConfigInvalid, last.Format(timeline.DateLayout), this.Format(timeline.DateLayout))
	}
	return last, this, nil
}

// TimelineParams returns the layout constants.
func (c *Config) TimelineParams() timeline.Params {
	return timeline.Params{
		Base:      c.Timeline.Base,
		Scale:     c.Timeline.Scale,
		MaxMicro:  c.Timeline.MaxMicro,
		MinHeight: c.Timeline.MinHeight,
	}
}

// Timeout returns the browser timeout, or zero for the default.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.Browser.Timeout)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// Load reads a config file over the defaults. Keys absent from the file
// keep their default; unknown keys are an error. ${VAR} references are
// expanded from the environment before parsing.
func Load(path string) (*Config, error) {
	format, err := codec.FormatFor(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	// Links replace the defaults rather than merging element-wise.
	cfg.Talk.Links = nil
	if err := codec.UnmarshalStrict(format, []byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	if cfg.Talk.Links == nil {
		cfg.Talk.Links = DefaultConfig().Talk.Links
	}

	if err := cfg.validateSections(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve finds the config file for nameOrPath. A value containing a path
// separator is used as is; a bare name is searched with each known
// extension in the current directory, then in the user config directory.
func Resolve(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", ErrEmptyConfigName
	}
	if fileutil.IsFilePath(nameOrPath) {
		return nameOrPath, nil
	}

	dirs := []string{"."}
	if userDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userDir, AppName))
	}

	// A bare name is tried with every extension; an explicit one as given.
	candidates := []string{nameOrPath}
	if filepath.Ext(nameOrPath) == "" {
		candidates = candidates[:0]
		for _, ext := range codec.Extensions {
			candidates = append(candidates, nameOrPath+ext)
		}
	}

	tried := make([]string, 0, len(dirs)*len(candidates))
	for _, dir := range dirs {
		for _, name := range candidates {
			p := filepath.Join(dir, name)
			if fileutil.FileExists(p) {
				return p, nil
			}
			tried = append(tried, p)
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
