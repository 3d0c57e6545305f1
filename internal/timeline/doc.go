// Package timeline lays out release tags on a shared time axis.
//
// # Pipeline
//
// The package turns the tag listing of a source checkout into a chart:
//
//  1. ParseTagLines splits "<name> <date>" lines into RawTag values
//  2. ParseReleases drops pre-releases (names containing "rc" or "b") and
//     parses numeric versions and dates; malformed tags fail the whole call
//  3. SortByDate orders releases by date, keeping input order for ties
//  4. Layout assigns every release a signed stem height (its level)
//  5. RenderSVG draws stems, markers and labels for a trailing window
//
// # Levels
//
// Releases of one major.minor line share a side of the baseline. The side is
// picked from the rank of the line among all distinct lines, sorted as
// numeric (major, minor) tuples: even ranks go up, odd ranks go down. Within
// a line the magnitude shrinks linearly with the micro component:
//
//	height = Base + Scale*(MaxMicro - micro)
//
// clamped below at MinHeight so that late patch releases never cross the
// baseline. With the defaults (1, 0.8, 5) micro 0 gets 5.0 and micro 1 gets
// 4.2.
//
// A feature release (last component zero) is drawn with a heavier stem, a
// larger filled marker and a bold label. Overlapping releases on the same
// date are not moved apart.
package timeline
