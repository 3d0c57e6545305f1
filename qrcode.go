package slidedeck

import (
	"bytes"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// qrCodeSVG encodes content as a QR code drawn with one SVG path.
// The quiet zone is kept so the code scans from a projected slide.
func qrCodeSVG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty content", ErrQRCode)
	}

	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQRCode, err)
	}
	bitmap := q.Bitmap()
	n := len(bitmap)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" shape-rendering="crispEdges">`, n, n)
	fmt.Fprintf(&buf, `<rect width="%d" height="%d" fill="white"/><path fill="black" d="`, n, n)
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				fmt.Fprintf(&buf, "M%d %dh1v1h-1z", x, y)
			}
		}
	}
	buf.WriteString(`"/></svg>`)
	return buf.Bytes(), nil
}
