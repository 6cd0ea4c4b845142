package inspect

import (
	"bytes"
	"strings"

	"github.com/go-faster/errors"
	pdf "github.com/ledongthuc/pdf"
)

// Document holds the trimmed plain text of every page, in page order. Pages
// without a content stream are kept as empty strings.
type Document struct {
	Pages []string
}

// PDF reads the text of every page of data.
func PDF(data []byte) (*Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "open pdf")
	}
	doc := &Document{Pages: make([]string, r.NumPage())}
	for i := range doc.Pages {
		p := r.Page(i + 1)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, errors.Wrapf(err, "page %d", i+1)
		}
		doc.Pages[i] = strings.TrimSpace(text)
	}
	return doc, nil
}

// Text joins the first maxPages pages, skipping empty ones. maxPages <= 0
// means all pages.
func (d *Document) Text(maxPages int) string {
	pages := d.Pages
	if maxPages > 0 && maxPages < len(pages) {
		pages = pages[:maxPages]
	}
	var b strings.Builder
	for _, p := range pages {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(p)
	}
	return b.String()
}
