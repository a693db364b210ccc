// Package extract turns uploaded lesson documents into plain text.
package extract

import (
	"context"
	"fmt"
)

// File is an uploaded document held in memory.
type File struct {
	Name string
	Data []byte
}

// Extractor converts one document into plain text, page texts joined with
// newlines.
type Extractor interface {
	Extract(ctx context.Context, name string, data []byte) (string, error)
}

// All extracts every file in order. A file that fails to extract is skipped
// and reported as a warning instead of failing the whole batch; the returned
// texts keep the order of the surviving files.
func All(ctx context.Context, ex Extractor, files []File) (texts []string, warnings []string) {
	for _, f := range files {
		text, err := ex.Extract(ctx, f.Name, f.Data)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}
		texts = append(texts, text)
	}
	return texts, warnings
}
