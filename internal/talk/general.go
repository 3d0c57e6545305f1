package talk

import (
	"context"
	"fmt"
	"math"
	"strings"

	slidedeck "github.com/alnah/go-slidedeck"
)

const (
	figureSizeCode = `plt.rcParams["figure.figsize"] = (
    19.2, 10.8)
plt.rcParams["figure.dpi"] = 100
`

	axesSizeCode = `plt.rcParams['axes.linewidth'] = 3
plt.rcParams['axes.labelsize'] = 40
plt.rcParams['xtick.labelsize'] = 32
plt.rcParams['xtick.major.width'] = 2
plt.rcParams['xtick.major.size'] = 7
plt.rcParams['ytick.labelsize'] = 32
plt.rcParams['ytick.major.width'] = 2
plt.rcParams['ytick.major.size'] = 7
plt.rcParams['lines.linewidth'] = 3
`

	savePDFCode = `from matplotlib.backends.backend_pdf import (
    PdfPages)

figures = [...]
with PdfPages('name.pdf') as pdf:
    for fig in figures:
        add_logo(fig)
        pdf.savefig(fig)
`

	headingCode = `def slide_heading(fig, text):
    """
    Add a heading to a slide,
    using a common style.
    """

    fig.text(0.05, 0.85, text,
             color='tab:blue', fontsize=72)
`

	plotCode = `fig, ax = plt.subplots()
slide_heading(fig, 'Add a plot')
ax.plot(np.sin(np.linspace(0, 5*np.pi, 100)))
`

	textCode = `fig.text(0.05, 0.75,
         'Here is some explanatory text')
`

	imageCode = `img = plt.imread('%s')
fig.figimage(img, xo=..., yo=...)
`
)

var (
	labelPos   = slidedeck.Point{X: 0.05, Y: 0.75}
	listingPos = slidedeck.Point{X: 0.05, Y: 0.7}
	fullPos    = slidedeck.Point{X: 0.05, Y: 0.8}

	plotRect = slidedeck.Rect{X: 0.1, Y: 0.1, W: 0.8, H: 0.5}
)

// imageBottom is the gap below the sample image, in figure fractions of
// a 1080 pixel page.
const imageBottom = 30.0 / 1080

// General produces the eight pages walking through the minimal setup.
func General(cfg Config) slidedeck.Producer {
	return func(ctx context.Context, st *slidedeck.Style) ([]*slidedeck.Slide, error) {
		code := func(pos slidedeck.Point, src string) slidedeck.Code {
			return slidedeck.Code{Pos: pos, Source: src, Language: "python", Style: st.CodeStyle()}
		}
		label := func(text string) slidedeck.Text {
			return slidedeck.Text{Pos: labelPos, Content: text, Style: st.Body()}
		}
		page := func(heading string, elems ...slidedeck.Element) *slidedeck.Slide {
			return (&slidedeck.Slide{Heading: heading}).Add(elems...)
		}

		img, err := sampleImage(cfg, st)
		if err != nil {
			return nil, err
		}
		return []*slidedeck.Slide{
			page("Slide setup", label("Set a big figure (1080p):"), code(listingPos, figureSizeCode)),
			page("Slide setup", label("Set a nice font:"), code(listingPos, fontCode(st))),
			page("Slide setup", label("Set better Axes sizes:"), code(listingPos, axesSizeCode)),
			page("Save the slides", code(fullPos, savePDFCode)),
			page("Add a slide title", code(fullPos, headingCode)),
			page("Add a plot", code(fullPos, plotCode), slidedeck.LinePlot{
				Rect:  plotRect,
				Y:     sinWave(100, 5*math.Pi),
				Style: slidedeck.LineStyle{Color: "tab:blue", Width: st.LineWidth},
			}),
			page("Write some text", label("Here is some explanatory text"), code(listingPos, textCode)),
			page("Add an image", code(fullPos, fmt.Sprintf(imageCode, cfg.imageName())), img),
		}, nil
	}
}

// fontCode lists the rcParams that reproduce the deck's own text style.
func fontCode(st *slidedeck.Style) string {
	var b strings.Builder
	b.WriteString("plt.rcParams['font.family'] = [\n")
	for _, f := range st.FontFamily {
		fmt.Fprintf(&b, "    '%s',\n", f)
	}
	b.WriteString("]\n")
	fmt.Fprintf(&b, "plt.rcParams['font.weight'] = '%s'\n", st.FontWeight)
	fmt.Fprintf(&b, "plt.rcParams['font.size'] = %g\n", st.FontSize)
	fmt.Fprintf(&b, "plt.rcParams['text.color'] = '%s'\n", st.TextColor)
	return b.String()
}

// sampleImage loads the image asset and centers it horizontally near the
// bottom of the page.
func sampleImage(cfg Config, st *slidedeck.Style) (slidedeck.Image, error) {
	name := cfg.imageName()
	img, err := cfg.images().LoadImage(name)
	if err != nil {
		return slidedeck.Image{}, fmt.Errorf("loading %s: %w", name, err)
	}

	const w, h = 0.4, 0.5
	return slidedeck.Image{
		Rect:     slidedeck.Rect{X: (1 - w) / 2, Y: imageBottom, W: w, H: h},
		Data:     img.Data,
		MIMEType: img.MIMEType,
	}, nil
}

// sinWave samples sin over n evenly spaced points from 0 to end inclusive.
func sinWave(n int, end float64) []float64 {
	y := make([]float64, n)
	if n == 1 {
		return y
	}
	for i := range y {
		y[i] = math.Sin(end * float64(i) / float64(n-1))
	}
	return y
}
