// Package talk holds the slide producers of the "Slides in Matplotlib"
// lightning talk. Steps returns them in presentation order:
//
//  1. Title: the wordmark, talk title and speaker (plain, no logo stamp)
//  2. Examples: the logo, the release history timeline, gallery links
//  3. Why: motivation
//  4. General: eight setup pages with code excerpts, a plot and an image
//  5. End: closing slides and the demo link
//
// Producers only fail when their inputs do: an unreadable checkout or a
// malformed release tag.
package talk
