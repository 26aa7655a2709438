package attachment

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

func normalizePDF(file RawFile) (Record, error) {
	text, err := extractPDFText(file.Data)
	if err != nil {
		return Record{}, newError(file.Name, ErrPDFExtract,
			fmt.Sprintf("Error processing PDF file %s: %v", file.Name, err))
	}
	if text == "" {
		return Record{}, newError(file.Name, ErrPDFEmpty,
			fmt.Sprintf("No readable text content found in PDF file %s", file.Name))
	}

	return Record{
		Name:    file.Name,
		Kind:    KindPDF,
		Content: text,
	}, nil
}

// extractPDFText returns the text of every page in order, pages separated by a blank line.
// The parser panics on some malformed inputs, so panics are turned into errors here.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, content)
	}

	return joinPages(pages), nil
}

// joinPages separates pages with a blank line. Whitespace inside the document is kept;
// only the ends of the result are trimmed.
func joinPages(pages []string) string {
	kept := make([]string, 0, len(pages))
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n\n"))
}
