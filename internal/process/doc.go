// Package process runs the external tools the deck build depends on (git,
// qpdf) and reaps the headless browser's process tree.
package process
