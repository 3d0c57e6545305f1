package timeline

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrInvalidParams indicates layout parameters that cannot produce stems.
var ErrInvalidParams = errors.New("invalid timeline parameters")

// Params are the presentation constants of the level heuristic.
type Params struct {
	Base      float64 // height of a micro release at MaxMicro
	Scale     float64 // height added per micro step below MaxMicro
	MaxMicro  int     // largest micro component given its own step
	MinHeight float64 // floor for releases beyond MaxMicro
}

// DefaultParams returns the constants used for the release history slide.
func DefaultParams() Params {
	return Params{
		Base:      1,
		Scale:     0.8,
		MaxMicro:  5,
		MinHeight: 0.2,
	}
}

// Validate checks that heights stay strictly positive.
func (p Params) Validate() error {
	if p.Base <= 0 {
		return fmt.Errorf("%w: base must be positive, got %g", ErrInvalidParams, p.Base)
	}
	if p.Scale < 0 {
		return fmt.Errorf("%w: scale must not be negative, got %g", ErrInvalidParams, p.Scale)
	}
	if p.MaxMicro < 0 {
		return fmt.Errorf("%w: max micro must not be negative, got %d", ErrInvalidParams, p.MaxMicro)
	}
	if p.MinHeight <= 0 {
		return fmt.Errorf("%w: min height must be positive, got %g", ErrInvalidParams, p.MinHeight)
	}
	return nil
}

// Height returns the unsigned stem height for a micro component.
func (p Params) Height(micro int) float64 {
	h := p.Base + p.Scale*float64(p.MaxMicro-micro)
	return math.Max(h, p.MinHeight)
}

// Entry is a release with its assigned level.
type Entry struct {
	Release Release
	Level   float64
	Feature bool
}

// Layout assigns a level to every release, preserving input order.
func Layout(releases []Release, p Params) []Entry {
	ranks := PrefixRanks(releases)

	entries := make([]Entry, len(releases))
	for i, r := range releases {
		h := p.Height(r.Version.Micro())
		if ranks[r.Version.Prefix()]%2 == 1 {
			h = -h
		}
		entries[i] = Entry{
			Release: r,
			Level:   h,
			Feature: r.Version.IsFeature(),
		}
	}
	return entries
}

// PrefixRanks returns the position of each distinct major.minor line in
// sorted order. Lines compare as numbers, so 3.9 ranks before 3.10; a
// text comparison of the components would put 3.10 first. The rank parity
// picks the stem direction, so the two orders differ only once a minor
// version reaches two digits.
func PrefixRanks(releases []Release) map[Prefix]int {
	seen := make(map[Prefix]struct{})
	var prefixes []Prefix
	for _, r := range releases {
		p := r.Version.Prefix()
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool { return prefixes[i].Less(prefixes[j]) })

	ranks := make(map[Prefix]int, len(prefixes))
	for i, p := range prefixes {
		ranks[p] = i
	}
	return ranks
}

// Span is a closed time interval.
type Span struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether the span is unset.
func (s Span) IsZero() bool {
	return s.From.IsZero() && s.To.IsZero()
}

// Contains reports whether t lies within the span.
func (s Span) Contains(t time.Time) bool {
	return !t.Before(s.From) && !t.After(s.To)
}

// TrailingWindow returns the span of the given number of years ending at end.
func TrailingWindow(end time.Time, years int) Span {
	return Span{From: end.AddDate(-years, 0, 0), To: end}
}
