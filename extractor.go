package amzncost

import (
	"context"
	"strings"
)

// Extractor turns a reduced product document into structured information.
// Implementations delegate the interpretation to a language model.
type Extractor interface {
	// Extract blocks until the model responds or ctx is done.
	// Returns EUNAVAILABLE if the underlying client is not configured.
	// Client errors are returned unmodified; unparseable output is EEXTRACT.
	Extract(ctx context.Context, html string) (*ExtractionResult, error)
}

// ExtractionInstruction is the system prompt shared by Extractor
// implementations. It fixes how prices are normalised so results are stable
// across runs and backends.
const ExtractionInstruction = `You extract product information from a small HTML fragment of an Amazon product page.
Return the product's price as "cost" and a short description of the product as "description".

Rules for cost:
- cost is a plain number: drop currency symbols and thousands separators ("$3,499.00" is 3499).
- If the price is split into whole, decimal and fraction parts, join them ("249" "." "99" is 249.99).
- If the price appears more than once, use the first complete price.
- If no price is present, use 0.

Rules for description:
- Base it on the product title; keep brand and model names.
- One sentence, no marketing language.`

// ExtractionPrompt wraps reduced product HTML into the user prompt.
func ExtractionPrompt(html string) string {
	var sb strings.Builder
	sb.WriteString("<product_html>\n")
	sb.WriteString(strings.TrimSpace(html))
	sb.WriteString("\n</product_html>\n\n")
	sb.WriteString("Extract the product information as JSON.")
	return sb.String()
}
