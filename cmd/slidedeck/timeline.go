package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/alnah/go-slidedeck/internal/config"
	"github.com/alnah/go-slidedeck/internal/dateutil"
	"github.com/alnah/go-slidedeck/internal/timeline"
)

// timelineRow is one release as listed by the timeline command.
type timelineRow struct {
	Date    string  `json:"date"`
	Tag     string  `json:"tag"`
	Version string  `json:"version"`
	Level   float64 `json:"level"`
	Feature bool    `json:"feature"`

	when time.Time
}

func newTimelineCmd(deps *Dependencies, common *commonFlags) *cobra.Command {
	var (
		jsonOutput bool
		all        bool
		last, this string
	)
	cmd := &cobra.Command{
		Use:   "timeline [checkout]",
		Short: "List the releases the release history slide draws",
		Long: `List the checkout's releases with the stem level each one gets on the
release history slide. Only releases inside the window are listed unless
--all is given.`,
		Args: checkoutArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, _, err := configure(common, args, func(cfg *config.Config) {
				mergeEventFlags(cmd.Flags(), last, this, cfg)
			}, loggerFromContext(ctx))
			if err != nil {
				return withHint(err, "")
			}
			rows, err := timelineRows(ctx, deps, cfg, all)
			if err != nil {
				return withHint(err, cfg.Talk.Checkout)
			}
			if jsonOutput {
				enc := json.NewEncoder(deps.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			printTimeline(deps.Stdout, rows, cfg.Events.DateFormat)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&all, "all", false, "list releases outside the window too")
	addEventFlags(cmd.Flags(), &last, &this)
	return cmd
}

// timelineRows reads, sorts and lays out the checkout's releases.
func timelineRows(ctx context.Context, deps *Dependencies, cfg *config.Config, all bool) ([]timelineRow, error) {
	_, this, err := cfg.EventDates(deps.Now())
	if err != nil {
		return nil, err
	}

	tags, err := deps.ListTags(ctx, cfg.Talk.Checkout)
	if err != nil {
		return nil, err
	}
	releases, err := timeline.ParseReleases(tags)
	if err != nil {
		return nil, err
	}
	timeline.SortByDate(releases)
	entries := timeline.Layout(releases, cfg.TimelineParams())

	window := timeline.TrailingWindow(this, cfg.Events.WindowYears)
	rows := make([]timelineRow, 0, len(entries))
	for _, e := range entries {
		if !all && !window.Contains(e.Release.Date) {
			continue
		}
		rows = append(rows, timelineRow{
			Date:    e.Release.Date.Format(timeline.DateLayout),
			Tag:     e.Release.Tag,
			Version: e.Release.Version.String(),
			Level:   e.Level,
			Feature: e.Feature,
			when:    e.Release.Date,
		})
	}
	loggerFromContext(ctx).Debug("timeline", "releases", len(entries), "listed", len(rows))
	return rows, nil
}

// printTimeline writes rows as a table, dates in the events date format.
func printTimeline(w io.Writer, rows []timelineRow, dateFormat string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, StyleDim.Render("no releases in the window"))
		return
	}
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("DATE", "VERSION", "LEVEL", "FEATURE")
	for _, r := range rows {
		feature := ""
		if r.Feature {
			feature = "yes"
		}
		date, err := dateutil.FormatDate(r.when, dateFormat)
		if err != nil {
			date = r.Date
		}
		table.AddRow(date, r.Version, fmt.Sprintf("%+.2f", r.Level), feature)
	}
	fmt.Fprintln(w, table)
}
