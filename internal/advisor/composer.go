// Package advisor composes the user-facing answer for a resolved query and
// exposes the single service facade the transport layer calls.
package advisor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xenking/catalog-advisor/internal/catalog"
)

// Source tags how a Result's answer was produced.
type Source string

const (
	// SourceAI marks answers returned by the external provider.
	SourceAI Source = "ai"
	// SourceFallback marks deterministic answers built locally after a
	// provider failure.
	SourceFallback Source = "fallback"
)

// Provider generates free text for a prompt. Implementations must honor the
// context deadline.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Composer produces the answer text for a question and its candidate
// products. It makes at most one provider call per Compose and never lets a
// provider failure escape: any error turns into the deterministic fallback.
type Composer struct {
	provider Provider
	timeout  time.Duration
}

// NewComposer creates a Composer. The timeout bounds each provider call; a
// non-positive value falls back to 10s.
func NewComposer(provider Provider, timeout time.Duration) *Composer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Composer{provider: provider, timeout: timeout}
}

// Compose returns the answer text, its source, and an optional diagnostic
// note. The note carries the provider error on the fallback path and is
// empty otherwise.
func (c *Composer) Compose(ctx context.Context, question string, products []catalog.Product) (answer string, source Source, note string) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.provider.Complete(ctx, buildPrompt(question, products))
	if err == nil && strings.TrimSpace(text) != "" {
		return text, SourceAI, ""
	}

	if err != nil {
		note = err.Error()
	} else {
		note = "provider returned empty answer"
	}
	return FallbackAnswer(products), SourceFallback, note
}

// buildPrompt embeds the question and a compact candidate listing, enough
// for grounding without the full records.
func buildPrompt(question string, products []catalog.Product) string {
	var b strings.Builder
	b.WriteString("You are a shopping assistant for an electronics store.\n")
	fmt.Fprintf(&b, "Customer question: %q\n", question)
	if len(products) == 0 {
		b.WriteString("No catalog products match the question.\n")
		b.WriteString("Tell the customer politely that nothing matched and suggest broadening the search.")
		return b.String()
	}
	b.WriteString("Matching products:\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s (%s), price %s, rating %s/5\n",
			p.Name, p.Brand, p.Price.String(), formatRating(p.Rating))
	}
	b.WriteString("Recommend the best option(s) for the customer in a short paragraph. ")
	b.WriteString("Mention only products from the list above.")
	return b.String()
}

// FallbackAnswer builds the deterministic answer used when the provider is
// unavailable. Identical input always yields identical text.
func FallbackAnswer(products []catalog.Product) string {
	if len(products) == 0 {
		return "No matching products were found. Try different keywords or relax the filters."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matching product(s):\n", len(products))
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s (%s), price %s, rating %s/5\n",
			i+1, p.Name, p.Brand, p.Price.String(), formatRating(p.Rating))
	}
	b.WriteString("Prices and availability are taken directly from the catalog.")
	return b.String()
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}
