package main

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/alnah/go-slidedeck/internal/config"
)

// commonFlags are shared by every command.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

func addCommonFlags(fs *pflag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config name or path (default: slidedeck.yaml if present)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug details")
}

// buildFlags override the config for one build.
type buildFlags struct {
	output      string
	draft       string
	html        string
	style       string
	assetPath   string
	lastEvent   string
	thisEvent   string
	timeout     time.Duration
	noLinearize bool
}

func addBuildFlags(fs *pflag.FlagSet, f *buildFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "final PDF path")
	fs.StringVar(&f.draft, "draft", "", "PDF path as printed, before linearization")
	fs.StringVar(&f.html, "html", "", "also write the rendered HTML to this path")
	fs.StringVar(&f.style, "style", "", "stylesheet name")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding the embedded styles and images")
	addEventFlags(fs, &f.lastEvent, &f.thisEvent)
	fs.DurationVar(&f.timeout, "timeout", 0, "browser timeout for loading and printing (e.g. 30s, 2m)")
	fs.BoolVar(&f.noLinearize, "no-linearize", false, "copy the draft instead of running qpdf")
}

func addEventFlags(fs *pflag.FlagSet, last, this *string) {
	fs.StringVar(last, "last-event", "", "date of the previous event, highlighted on the timeline")
	fs.StringVar(this, "this-event", "", "date of this event, where the timeline ends")
}

// mergeBuildFlags applies the flags the user actually set.
func mergeBuildFlags(fs *pflag.FlagSet, f *buildFlags, cfg *config.Config) {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("output", &cfg.Output.Final, f.output)
	set("draft", &cfg.Output.Draft, f.draft)
	set("html", &cfg.Output.HTML, f.html)
	set("style", &cfg.Style.CSS, f.style)
	set("asset-path", &cfg.Assets.BasePath, f.assetPath)
	mergeEventFlags(fs, f.lastEvent, f.thisEvent, cfg)
	if fs.Changed("timeout") {
		cfg.Browser.Timeout = f.timeout.String()
	}
	if fs.Changed("no-linearize") {
		cfg.Output.Linearize = !f.noLinearize
	}
}

func mergeEventFlags(fs *pflag.FlagSet, last, this string, cfg *config.Config) {
	if fs.Changed("last-event") {
		cfg.Events.Last = last
	}
	if fs.Changed("this-event") {
		cfg.Events.This = this
	}
}
