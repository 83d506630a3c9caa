// Package gemini implements amzncost.Extractor using Google Gemini
// structured output.
package gemini

import (
	"context"

	"github.com/fwojciec/amzncost"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is given to NewExtractor.
const DefaultModel = "gemini-2.5-flash"

// Ensure Extractor implements amzncost.Extractor at compile time.
var _ amzncost.Extractor = (*Extractor)(nil)

// Extractor implements amzncost.Extractor using Google Gemini.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor creates a new Extractor. An empty model selects DefaultModel.
func NewExtractor(client *genai.Client, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{client: client, model: model}
}

// Extract asks Gemini for the cost and description in html.
func (e *Extractor) Extract(ctx context.Context, html string) (*amzncost.ExtractionResult, error) {
	if e.client == nil {
		return nil, amzncost.Errorf(amzncost.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(amzncost.ExtractionPrompt(html), genai.RoleUser)},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, amzncost.Errorf(amzncost.EEXTRACT, "gemini returned nil result")
	}

	return amzncost.DecodeExtractionResult(result.Text())
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// The response is constrained to ResponseSchema as JSON.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: amzncost.ExtractionInstruction}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
	}
}

// ResponseSchema describes ExtractionResult.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"cost": {
				Type:        genai.TypeNumber,
				Description: "Product price as a plain number without currency symbols or thousands separators.",
			},
			"description": {
				Type:        genai.TypeString,
				Description: "One-sentence description of the product.",
			},
		},
		Required:         []string{"cost", "description"},
		PropertyOrdering: []string{"cost", "description"},
	}
}
