package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor reads PDF text with the ledongthuc/pdf parser.
type PDFExtractor struct{}

func NewPDFExtractor() PDFExtractor { return PDFExtractor{} }

func (PDFExtractor) Extract(ctx context.Context, name string, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("extract: open %s: %w", name, err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract: %s page %d: %w", name, i, err)
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

var _ Extractor = PDFExtractor{}
