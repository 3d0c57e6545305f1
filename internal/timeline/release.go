package timeline

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors for tag parsing.
var (
	ErrMalformedTag     = errors.New("malformed release tag")
	ErrMalformedTagLine = errors.New("malformed tag listing line")
	ErrMalformedDate    = errors.New("malformed release date")
)

// DateLayout is the format of tag dates in the listing (git's "short" date).
const DateLayout = "2006-01-02"

// minComponents is the number of components a version needs (major.minor).
const minComponents = 2

// RawTag is one unparsed entry of a tag listing.
type RawTag struct {
	Name string
	Date string
}

// Version holds the numeric components of a dotted version string.
type Version []int

// Prefix identifies a major.minor release line.
type Prefix struct {
	Major int
	Minor int
}

// Less orders prefixes as numeric tuples.
func (p Prefix) Less(o Prefix) bool {
	if p.Major != o.Major {
		return p.Major < o.Major
	}
	return p.Minor < o.Minor
}

// String formats the prefix as "major.minor".
func (p Prefix) String() string {
	return fmt.Sprintf("%d.%d", p.Major, p.Minor)
}

// ParseVersion parses a dotted numeric version such as "3.7.0" or "v3.7.0".
// A single leading "v" is dropped. Every component must be a non-negative
// decimal integer and there must be at least major and minor components.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimPrefix(s, "v")
	parts := strings.Split(trimmed, ".")
	if len(parts) < minComponents {
		return nil, fmt.Errorf("%w: %q (need at least major.minor)", ErrMalformedTag, s)
	}

	v := make(Version, len(parts))
	for i, part := range parts {
		if !isDigits(part) {
			return nil, fmt.Errorf("%w: %q (component %d is %q)", ErrMalformedTag, s, i+1, part)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedTag, s, err)
		}
		v[i] = n
	}
	return v, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String joins the components with dots.
func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Prefix returns the major.minor line of the version.
func (v Version) Prefix() Prefix {
	return Prefix{Major: v[0], Minor: v[1]}
}

// Micro returns the third component, or 0 for two-component versions.
func (v Version) Micro() int {
	if len(v) < 3 {
		return 0
	}
	return v[2]
}

// IsFeature reports whether the last component is zero.
func (v Version) IsFeature() bool {
	return v[len(v)-1] == 0
}

// Release is a parsed, dated release tag.
type Release struct {
	Tag     string
	Version Version
	Date    time.Time
}

// IsPreRelease reports whether a tag name denotes a candidate or beta release.
func IsPreRelease(name string) bool {
	return strings.Contains(name, "rc") || strings.Contains(name, "b")
}

// ParseTagLines splits a tag listing into raw tags. Each non-blank line holds
// a tag name, one space, and the creation date. Blank lines are ignored.
func ParseTagLines(out string) ([]RawTag, error) {
	var tags []RawTag
	for i, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, date, ok := strings.Cut(line, " ")
		if !ok || name == "" || strings.TrimSpace(date) == "" {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedTagLine, i+1, line)
		}
		tags = append(tags, RawTag{Name: name, Date: strings.TrimSpace(date)})
	}
	return tags, nil
}

// ParseReleases filters out pre-releases and parses the remaining tags.
// The first malformed version or date aborts parsing.
func ParseReleases(raw []RawTag) ([]Release, error) {
	releases := make([]Release, 0, len(raw))
	for _, tag := range raw {
		if IsPreRelease(tag.Name) {
			continue
		}
		v, err := ParseVersion(tag.Name)
		if err != nil {
			return nil, err
		}
		date, err := time.Parse(DateLayout, tag.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: tag %q: %q", ErrMalformedDate, tag.Name, tag.Date)
		}
		releases = append(releases, Release{Tag: tag.Name, Version: v, Date: date})
	}
	return releases, nil
}

// SortByDate orders releases by ascending date. Releases on the same date keep
// their relative input order.
func SortByDate(releases []Release) {
	sort.SliceStable(releases, func(i, j int) bool {
		return releases[i].Date.Before(releases[j].Date)
	})
}
