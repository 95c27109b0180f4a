// Package extractor turns the raw text of a classified invoice into a structured record.
// There is one Extractor per known issuer; each encodes that issuer's labels and
// line-item column layout.
package extractor

import (
	"fmt"

	"invex/internal/config"
	"invex/internal/domain"
)

// Extractor parses documents of a single issuer.
type Extractor interface {
	Issuer() domain.IssuerKind
	Extract(doc *domain.RawDocument) (*domain.InvoiceRecord, error)
}

// ExtractionError reports a fatal extraction problem for one document.
type ExtractionError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %s", e.Field, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func tableNotFound() *ExtractionError {
	return &ExtractionError{
		Field:  "line_items",
		Reason: domain.ErrTableNotFound.Error(),
		Err:    domain.ErrTableNotFound,
	}
}

// Registry maps issuers to their extractors.
type Registry struct {
	extractors map[domain.IssuerKind]Extractor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[domain.IssuerKind]Extractor)}
}

// NewDefaultRegistry registers the Mogli Lab, SDI and JLL extractors using the
// configured canonical issuer names.
func NewDefaultRegistry(cfg config.IssuersConfig) *Registry {
	r := NewRegistry()
	r.Register(NewMogli(cfg.Mogli))
	r.Register(NewSDI(cfg.SDI))
	r.Register(NewJLL(cfg.JLL))
	return r
}

// Register adds an extractor, replacing any previous one for the same issuer.
func (r *Registry) Register(e Extractor) {
	r.extractors[e.Issuer()] = e
}

// Get returns the extractor for kind.
func (r *Registry) Get(kind domain.IssuerKind) (Extractor, error) {
	e, ok := r.extractors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoExtractor, kind)
	}
	return e, nil
}
