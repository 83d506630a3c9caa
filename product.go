package amzncost

import (
	"encoding/json"
	"strings"
)

// ProductPage is the raw HTML of a fetched product page.
type ProductPage struct {
	URL  string
	HTML string
}

// Placeholders used by a Reducer when a field is not found on the page.
const (
	TitleNotFound = "Product title not found"
	PriceNotFound = "Price not found"
)

// ReducedContent is the minimal document handed to an Extractor.
type ReducedContent struct {
	// Title is the trimmed title text, or TitleNotFound.
	Title string

	// Price is the trimmed price text, or PriceNotFound.
	Price string

	// HTML is a synthetic document holding exactly one title element and
	// one price element.
	HTML string
}

// ExtractionResult is the structured product information returned by an
// Extractor. It is forwarded as produced; nothing here enforces a
// non-negative cost or a non-empty description.
type ExtractionResult struct {
	Cost        float64 `json:"cost"`
	Description string  `json:"description"`
}

// DecodeExtractionResult decodes model output into an ExtractionResult.
// Returns EEXTRACT if the text is empty or not a JSON object.
func DecodeExtractionResult(text string) (*ExtractionResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, Errorf(EEXTRACT, "extraction returned empty output")
	}

	var result ExtractionResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, Wrapf(err, EEXTRACT, "malformed extraction output: %v", err)
	}
	return &result, nil
}
