package slidedeck

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
)

// producerName is written as the PDF Producer.
const producerName = "go-slidedeck"

var (
	reSize = regexp.MustCompile(`/Size\s+(\d+)`)
	reRoot = regexp.MustCompile(`/Root\s+(\d+\s+\d+\s+R)`)
	reID   = regexp.MustCompile(`/ID\s*(\[[^\]]*\])`)
	rePage = regexp.MustCompile(`/Type\s*/Page\b`)
)

// countPages counts the page objects of pdf. It returns zero when none are
// visible, as in a PDF that keeps its objects in object streams.
func countPages(pdf []byte) int {
	return len(rePage.FindAllIndex(pdf, -1))
}

// trailerInfo is what an incremental update needs from the previous trailer.
type trailerInfo struct {
	size     int
	root     string
	id       string
	prevXref int
}

// stampInfo appends an incremental update to pdf that replaces the document
// information dictionary. The original bytes are left untouched.
func stampInfo(pdf []byte, meta Metadata, now time.Time) ([]byte, error) {
	tr, err := readTrailer(pdf)
	if err != nil {
		return nil, err
	}

	created := meta.Created
	if created.IsZero() {
		created = now
	}

	var out bytes.Buffer
	out.Grow(len(pdf) + 1024)
	out.Write(pdf)
	if !bytes.HasSuffix(pdf, []byte("\n")) {
		out.WriteByte('\n')
	}

	objNum := tr.size
	objOffset := out.Len()
	fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", objNum, infoDict(meta, created))

	xrefOffset := out.Len()
	fmt.Fprintf(&out, "xref\n%d 1\n%010d 00000 n \n", objNum, objOffset)

	id := tr.id
	if id == "" {
		id = newDocumentID()
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root %s /Info %d 0 R /Prev %d /ID %s >>\n",
		objNum+1, tr.root, objNum, tr.prevXref, id)
	fmt.Fprintf(&out, "startxref\n%d\n%%%%EOF\n", xrefOffset)

	return out.Bytes(), nil
}

// readTrailer locates the last classic trailer and cross-reference offset.
func readTrailer(pdf []byte) (*trailerInfo, error) {
	sx := bytes.LastIndex(pdf, []byte("startxref"))
	if sx < 0 {
		return nil, fmt.Errorf("%w: no startxref", ErrMetadata)
	}
	fields := strings.Fields(string(pdf[sx+len("startxref"):]))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty startxref", ErrMetadata)
	}
	prev, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: bad startxref: %v", ErrMetadata, err)
	}

	tp := bytes.LastIndex(pdf[:sx], []byte("trailer"))
	if tp < 0 {
		return nil, fmt.Errorf("%w: no trailer dictionary (cross-reference streams are not supported)", ErrMetadata)
	}
	trailer := pdf[tp:sx]

	m := reSize.FindSubmatch(trailer)
	if m == nil {
		return nil, fmt.Errorf("%w: trailer has no /Size", ErrMetadata)
	}
	size, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: bad /Size: %v", ErrMetadata, err)
	}

	r := reRoot.FindSubmatch(trailer)
	if r == nil {
		return nil, fmt.Errorf("%w: trailer has no /Root", ErrMetadata)
	}

	tr := &trailerInfo{size: size, root: string(r[1]), prevXref: prev}
	if id := reID.FindSubmatch(trailer); id != nil {
		tr.id = string(id[1])
	}
	return tr, nil
}

// infoDict renders the document information dictionary.
func infoDict(meta Metadata, created time.Time) string {
	var b strings.Builder
	b.WriteString("<<")
	entries := []struct{ key, value string }{
		{"Title", meta.Title},
		{"Author", meta.Author},
		{"Subject", meta.Subject},
		{"Keywords", meta.Keywords},
		{"Creator", meta.Creator},
		{"Producer", producerName},
	}
	for _, e := range entries {
		if e.value == "" {
			continue
		}
		fmt.Fprintf(&b, " /%s %s", e.key, pdfString(e.value))
	}
	fmt.Fprintf(&b, " /CreationDate %s", pdfString(pdfDate(created)))
	b.WriteString(" >>")
	return b.String()
}

// pdfString encodes text as a PDF string: a literal string for printable
// ASCII, otherwise UTF-16BE with a byte order mark as a hex string.
func pdfString(s string) string {
	if isPrintableASCII(s) {
		r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
		return "(" + r.Replace(s) + ")"
	}
	enc, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().String(s)
	if err != nil {
		// Invalid UTF-8 cannot be represented; keep the ASCII subset.
		return pdfString(strings.Map(func(r rune) rune {
			if r < 0x20 || r > 0x7e {
				return -1
			}
			return r
		}, s))
	}
	return "<" + hex.EncodeToString([]byte(enc)) + ">"
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// pdfDate formats t as a PDF date string, D:YYYYMMDDHHmmSS+HH'mm'.
func pdfDate(t time.Time) string {
	_, offset := t.Zone()
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("D:%s%c%02d'%02d'", t.Format("20060102150405"), sign, offset/3600, (offset%3600)/60)
}

// newDocumentID returns a fresh file identifier pair.
func newDocumentID() string {
	u := uuid.New()
	h := hex.EncodeToString(u[:])
	return "[<" + h + "><" + h + ">]"
}
