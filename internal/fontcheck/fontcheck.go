// Package fontcheck finds the bold Calibri and Carlito faces the slides are
// set in, and decides which one renders the logo and which the text.
//
// Calibri is the logo's original face. Carlito is metrically equivalent and
// freely available, so it is preferred for body text when both exist.
package fontcheck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/sfnt"
)

// Family names looked up in the installed fonts.
const (
	Calibri = "Calibri"
	Carlito = "Carlito"
)

// Warnings printed when only one of the two families is installed.
const (
	WarnCalibriOnly = "Using Calibri for all text. Non-logo text may not appear correct."
	WarnCarlitoOnly = "Using Carlito for all text. The logo may not appear correct."
)

// ErrNoFont is returned when neither family is installed in bold.
var ErrNoFont = errors.New("no bold Calibri or Carlito font installed")

// Face is an installed bold font file.
type Face struct {
	Family string
	Path   string
}

// Selection is the outcome of the font check.
type Selection struct {
	TextFont Face
	LogoFont Face
	Warning  string // empty when both families were found
}

// Faces returns the distinct faces of the selection, logo first.
func (s *Selection) Faces() []Face {
	if s.LogoFont == s.TextFont {
		return []Face{s.LogoFont}
	}
	return []Face{s.LogoFont, s.TextFont}
}

// Scanner searches font files. The zero value is not usable; use NewScanner.
type Scanner struct {
	list     func() []string
	readFile func(string) ([]byte, error)
}

// NewScanner returns a Scanner over the system font directories.
func NewScanner() *Scanner {
	return &Scanner{list: findfont.List, readFile: os.ReadFile}
}

// Check scans the system fonts and selects faces for text and logo.
func Check() (*Selection, error) {
	return NewScanner().Check()
}

// Check finds bold Calibri and Carlito and applies the selection rules.
func (s *Scanner) Check() (*Selection, error) {
	found := s.Find(Calibri, Carlito)
	return Select(found[Calibri], found[Carlito])
}

// Find returns the first bold face of each requested family. Families that
// are not installed are absent from the map.
func (s *Scanner) Find(families ...string) map[string]*Face {
	found := make(map[string]*Face, len(families))
	for _, path := range s.list() {
		pending := familiesInFileName(path, families, found)
		if len(pending) == 0 {
			continue
		}
		data, err := s.readFile(path)
		if err != nil {
			continue
		}
		for _, family := range boldFamilies(data) {
			for _, want := range pending {
				if strings.EqualFold(family, want) && found[want] == nil {
					found[want] = &Face{Family: want, Path: path}
				}
			}
		}
	}
	return found
}

// Select applies the selection rules: Calibri draws the logo whenever it is
// available, Carlito draws the text whenever it is available.
func Select(calibri, carlito *Face) (*Selection, error) {
	switch {
	case calibri != nil && carlito != nil:
		return &Selection{LogoFont: *calibri, TextFont: *carlito}, nil
	case calibri != nil:
		return &Selection{LogoFont: *calibri, TextFont: *calibri, Warning: WarnCalibriOnly}, nil
	case carlito != nil:
		return &Selection{LogoFont: *carlito, TextFont: *carlito, Warning: WarnCarlitoOnly}, nil
	default:
		return nil, ErrNoFont
	}
}

// familiesInFileName returns the families not yet found whose name appears
// in the file name. Parsing every installed font is slow, and vendors name
// their files after the family (calibrib.ttf, Carlito-Bold.ttf).
func familiesInFileName(path string, families []string, found map[string]*Face) []string {
	base := strings.ToLower(filepath.Base(path))
	var pending []string
	for _, f := range families {
		if found[f] == nil && strings.Contains(base, strings.ToLower(f)) {
			pending = append(pending, f)
		}
	}
	return pending
}

// boldFamilies returns the family names of the bold, upright faces in a
// font file or collection.
func boldFamilies(data []byte) []string {
	var fonts []*sfnt.Font
	if c, err := sfnt.ParseCollection(data); err == nil {
		for i := 0; i < c.NumFonts(); i++ {
			if f, err := c.Font(i); err == nil {
				fonts = append(fonts, f)
			}
		}
	} else if f, err := sfnt.Parse(data); err == nil {
		fonts = append(fonts, f)
	}

	var buf sfnt.Buffer
	var families []string
	for _, f := range fonts {
		family, sub := faceNames(f, &buf)
		if family != "" && strings.EqualFold(sub, "Bold") {
			families = append(families, family)
		}
	}
	return families
}

// faceNames prefers the typographic names and falls back to the legacy
// family and subfamily records.
func faceNames(f *sfnt.Font, buf *sfnt.Buffer) (family, subfamily string) {
	family, _ = f.Name(buf, sfnt.NameIDTypographicFamily)
	if family == "" {
		family, _ = f.Name(buf, sfnt.NameIDFamily)
	}
	subfamily, _ = f.Name(buf, sfnt.NameIDTypographicSubfamily)
	if subfamily == "" {
		subfamily, _ = f.Name(buf, sfnt.NameIDSubfamily)
	}
	return family, subfamily
}

// String describes the selection for logs.
func (s *Selection) String() string {
	if s.LogoFont.Family == s.TextFont.Family {
		return fmt.Sprintf("%s for all text (%s)", s.TextFont.Family, s.TextFont.Path)
	}
	return fmt.Sprintf("%s for logo (%s) and %s for remaining text (%s)",
		s.LogoFont.Family, s.LogoFont.Path, s.TextFont.Family, s.TextFont.Path)
}
