// Package openai implements amzncost.Extractor using OpenAI structured
// outputs.
package openai

import (
	"context"

	"github.com/fwojciec/amzncost"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultModel is used when no model is given to NewExtractor.
const DefaultModel = "gpt-4o-mini"

// Ensure Extractor implements amzncost.Extractor at compile time.
var _ amzncost.Extractor = (*Extractor)(nil)

// Extractor implements amzncost.Extractor using the Chat Completions API
// with a strict JSON schema response format.
type Extractor struct {
	client *openai.Client
	model  string
}

// NewClient builds a client for apiKey. A non-empty baseURL points the
// client at an OpenAI-compatible endpoint.
func NewClient(apiKey, baseURL string, opts ...option.RequestOption) *openai.Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &client
}

// NewExtractor creates a new Extractor. An empty model selects DefaultModel.
func NewExtractor(client *openai.Client, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{client: client, model: model}
}

// Extract asks the model for the cost and description in html.
func (e *Extractor) Extract(ctx context.Context, html string) (*amzncost.ExtractionResult, error) {
	if e.client == nil {
		return nil, amzncost.Errorf(amzncost.EUNAVAILABLE, "openai client not configured")
	}

	resp, err := e.client.Chat.Completions.New(ctx, BuildParams(e.model, html))
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, amzncost.Errorf(amzncost.EEXTRACT, "openai returned no choices")
	}
	if refusal := resp.Choices[0].Message.Refusal; refusal != "" {
		return nil, amzncost.Errorf(amzncost.EEXTRACT, "openai refused: %s", refusal)
	}

	return amzncost.DecodeExtractionResult(resp.Choices[0].Message.Content)
}

// BuildParams returns the chat completion request for html.
func BuildParams(model, html string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(amzncost.ExtractionInstruction),
			openai.UserMessage(amzncost.ExtractionPrompt(html)),
		},
		Temperature: openai.Float(0),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "product_info",
					Description: openai.String("Price and description of a product"),
					Schema:      ResponseSchema(),
					Strict:      openai.Bool(true),
				},
			},
		},
	}
}

// ResponseSchema describes ExtractionResult as JSON Schema.
func ResponseSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cost": map[string]any{
				"type":        "number",
				"description": "Product price as a plain number without currency symbols or thousands separators.",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One-sentence description of the product.",
			},
		},
		"required":             []string{"cost", "description"},
		"additionalProperties": false,
	}
}
