package slidedeck

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
)

// baselineOffset approximates the distance between the bottom of a text box
// and its baseline (half-leading plus descent), in em.
const baselineOffset = "0.35em"

// buildPageCSS generates the @page rule and the slide box for the style.
func buildPageCSS(st *Style) string {
	return fmt.Sprintf(`
/* Page */
@page {
  size: %sin %sin;
  margin: 0;
}

.slide {
  width: %sin;
  height: %sin;
  font-family: %s;
  font-weight: %s;
  font-size: %spt;
  color: %s;
}
`, fnum(st.PageWidth), fnum(st.PageHeight),
		fnum(st.PageWidth), fnum(st.PageHeight),
		fontFamilyCSS(st.FontFamily), st.FontWeight, fnum(st.FontSize), ResolveColor(st.TextColor))
}

// buildFontFaceCSS generates @font-face rules pointing at local font files.
func buildFontFaceCSS(fonts []FontFace) string {
	if len(fonts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n/* Fonts */\n")
	for _, f := range fonts {
		weight := f.Weight
		if weight == "" {
			weight = "normal"
		}
		fmt.Fprintf(&b, "@font-face {\n  font-family: \"%s\";\n  src: url(\"%s\");\n  font-weight: %s;\n}\n",
			escapeCSSString(f.Family), fileURL(f.Path), weight)
	}
	return b.String()
}

// fileURL converts a local path to a file:// URL.
func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

// fontFamilyCSS quotes each family name and joins them into a font stack.
// Generic families (serif, sans-serif, monospace) stay unquoted.
func fontFamilyCSS(families []string) string {
	quoted := make([]string, 0, len(families))
	for _, f := range families {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		switch f {
		case "serif", "sans-serif", "monospace", "cursive", "fantasy":
			quoted = append(quoted, f)
		default:
			quoted = append(quoted, `"`+escapeCSSString(f)+`"`)
		}
	}
	return strings.Join(quoted, ", ")
}

// textStyleCSS renders the non-default parts of a text style as inline CSS.
func textStyleCSS(ts TextStyle) string {
	var decls []string
	if ts.Font != "" {
		decls = append(decls, "font-family:"+fontFamilyCSS(strings.Split(ts.Font, ",")))
	}
	if ts.Size > 0 {
		decls = append(decls, "font-size:"+fnum(ts.Size)+"pt")
	}
	if ts.Weight != "" {
		decls = append(decls, "font-weight:"+ts.Weight)
	}
	if ts.Color != "" {
		decls = append(decls, "color:"+ResolveColor(ts.Color))
	}
	if ts.Alpha > 0 && ts.Alpha < 1 {
		decls = append(decls, "opacity:"+fnum(ts.Alpha))
	}
	return strings.Join(decls, ";")
}

// anchorCSS places a box so that its anchor (given by the alignments) sits
// at p. Figure fractions count from the bottom-left corner.
func anchorCSS(p Point, h HAlign, v VAlign) string {
	var decls []string
	tx, ty := "", ""

	switch h {
	case AlignCenter:
		decls = append(decls, "left:"+percent(p.X))
		tx = "-50%"
	case AlignRight:
		decls = append(decls, "right:"+percent(1-p.X))
	default:
		decls = append(decls, "left:"+percent(p.X))
	}

	switch v {
	case VAlignTop:
		decls = append(decls, "top:"+percent(1-p.Y))
	case VAlignCenter:
		decls = append(decls, "top:"+percent(1-p.Y))
		ty = "-50%"
	case VAlignBottom:
		decls = append(decls, "bottom:"+percent(p.Y))
	default:
		decls = append(decls, fmt.Sprintf("bottom:calc(%s - %s)", percent(p.Y), baselineOffset))
	}

	if tx != "" || ty != "" {
		if tx == "" {
			tx = "0"
		}
		if ty == "" {
			ty = "0"
		}
		decls = append(decls, fmt.Sprintf("transform:translate(%s,%s)", tx, ty))
	}
	return strings.Join(decls, ";")
}

// rectCSS positions a box over a figure-fraction rectangle.
func rectCSS(r Rect) string {
	return fmt.Sprintf("left:%s;bottom:%s;width:%s;height:%s",
		percent(r.X), percent(r.Y), percent(r.W), percent(r.H))
}

// percent formats a fraction as a CSS percentage.
func percent(f float64) string {
	return fnum(f*100) + "%"
}

// fnum formats a number without trailing zeros.
func fnum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// escapeCSSString escapes a string for use inside a quoted CSS string.
func escapeCSSString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\A `)
	s = strings.ReplaceAll(s, "\r", "")
	return s
}
