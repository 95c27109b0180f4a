package port

import (
	"context"

	"invex/internal/domain"
)

// TextLoader turns a PDF into its per-page text.
type TextLoader interface {
	// Load reads the PDF at path.
	Load(ctx context.Context, path string) (*domain.RawDocument, error)
	// Parse decodes an in-memory PDF; name is recorded as the document's file name.
	Parse(ctx context.Context, name string, data []byte) (*domain.RawDocument, error)
}
