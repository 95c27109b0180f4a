// Package classifier decides which known issuer produced an invoice.
package classifier

import (
	"github.com/cloudflare/ahocorasick"

	"invex/internal/config"
	"invex/internal/domain"
)

// Classifier matches canonical issuer names against document text in one pass.
// Hits are resolved by issuer priority (domain.KnownIssuers order), so the outcome is
// the same as testing each name with strings.Contains in that order.
type Classifier struct {
	matcher  *ahocorasick.Matcher
	patterns []string
	// issuers[i] lists every issuer whose canonical name is patterns[i].
	issuers [][]domain.IssuerKind
	names   map[domain.IssuerKind]string
}

// New builds a classifier from canonical names keyed by issuer. Empty names are ignored.
func New(names map[domain.IssuerKind]string) *Classifier {
	c := &Classifier{names: make(map[domain.IssuerKind]string, len(names))}
	index := make(map[string]int)

	for _, kind := range domain.KnownIssuers {
		name := names[kind]
		if name == "" {
			continue
		}
		c.names[kind] = name
		if i, ok := index[name]; ok {
			c.issuers[i] = append(c.issuers[i], kind)
			continue
		}
		index[name] = len(c.patterns)
		c.patterns = append(c.patterns, name)
		c.issuers = append(c.issuers, []domain.IssuerKind{kind})
	}

	if len(c.patterns) > 0 {
		dict := make([][]byte, len(c.patterns))
		for i, p := range c.patterns {
			dict[i] = []byte(p)
		}
		c.matcher = ahocorasick.NewMatcher(dict)
	}
	return c
}

// NewFromConfig builds a classifier from the issuers config section.
func NewFromConfig(cfg config.IssuersConfig) *Classifier {
	return New(map[domain.IssuerKind]string{
		domain.IssuerMogliLab: cfg.Mogli,
		domain.IssuerSDI:      cfg.SDI,
		domain.IssuerJLL:      cfg.JLL,
	})
}

// Classify returns the highest-priority issuer whose canonical name occurs in text,
// or IssuerUnrecognized. Matching is exact and case-sensitive.
func (c *Classifier) Classify(text string) domain.IssuerKind {
	if c.matcher == nil || text == "" {
		return domain.IssuerUnrecognized
	}

	best := len(domain.KnownIssuers)
	for _, hit := range c.matcher.Match([]byte(text)) {
		for _, kind := range c.issuers[hit] {
			if p := priority(kind); p < best {
				best = p
			}
		}
	}
	if best == len(domain.KnownIssuers) {
		return domain.IssuerUnrecognized
	}
	return domain.KnownIssuers[best]
}

// Name returns the canonical legal name configured for kind.
func (c *Classifier) Name(kind domain.IssuerKind) string {
	return c.names[kind]
}

func priority(kind domain.IssuerKind) int {
	for i, k := range domain.KnownIssuers {
		if k == kind {
			return i
		}
	}
	return len(domain.KnownIssuers)
}
