package dataset

import (
	"fmt"
	"strings"

	"github.com/ppiankov/factprep/internal/model"
	"golang.org/x/net/html"
)

// Builder turns validated TSV rows into ClaimExamples
type Builder struct {
	schema      *Schema
	useMetadata bool
	stripHTML   bool
}

// NewBuilder creates a builder over a validated schema
func NewBuilder(schema *Schema, useMetadata, stripHTML bool) *Builder {
	return &Builder{
		schema:      schema,
		useMetadata: useMetadata,
		stripHTML:   stripHTML,
	}
}

// Build constructs a ClaimExample from one row. The row must have passed
// Schema.RowComplete. The label is lower-cased; the evidence slice always
// has exactly the configured evidence count.
func (b *Builder) Build(row []string, id string) model.ClaimExample {
	evidences := make([]string, b.schema.EvidenceCount())
	for i := range evidences {
		evidences[i] = b.clean(b.schema.Evidence(row, i+1))
	}

	claim := b.clean(b.schema.Field(row, ColClaim))
	metadata := b.metadata(row)
	if b.useMetadata {
		claim = claim + " " + metadata
	}

	return model.ClaimExample{
		ID:        id,
		Claim:     claim,
		Evidences: evidences,
		Label:     strings.ToLower(strings.TrimSpace(b.schema.Field(row, ColLabel))),
		Metadata:  metadata,
	}
}

// metadata derives the human-readable provenance string from the named
// language, site, claimant and date columns
func (b *Builder) metadata(row []string) string {
	field := func(name string) string {
		return strings.TrimSpace(b.schema.Field(row, name))
	}
	return fmt.Sprintf("language : %s, site : %s, claimant : %s, claim_date : %s, review_date: %s",
		field(ColLanguage), field(ColSite), field(ColClaimant), field(ColClaimDate), field(ColReviewDate))
}

// clean trims the field and, when enabled, reduces scraped markup to
// visible text
func (b *Builder) clean(text string) string {
	text = strings.TrimSpace(text)
	if b.stripHTML && strings.ContainsRune(text, '<') {
		text = visibleText(text)
	}
	return text
}

// visibleText extracts text nodes from markup, skipping scripts/styles.
// Evidence passages come from scraped pages and occasionally carry tags.
func visibleText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return buf.String()
}
