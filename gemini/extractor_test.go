package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/amzncost"
	"github.com/fwojciec/amzncost/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// generateRequest is the subset of the generateContent request body the tests inspect.
type generateRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	SystemInstruction struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	GenerationConfig struct {
		ResponseMIMEType string         `json:"responseMimeType"`
		ResponseSchema   map[string]any `json:"responseSchema"`
	} `json:"generationConfig"`
}

// modelResponse wraps text the way the Gemini API returns a candidate.
func modelResponse(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	})
	return string(body)
}

// newTestServer starts a fake Gemini API that records requests and answers with reply.
func newTestServer(t *testing.T, status int, reply string) (*genai.Client, <-chan generateRequest) {
	t.Helper()

	requests := make(chan generateRequest, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if strings.HasSuffix(r.URL.Path, ":generateContent") {
			select {
			case requests <- req:
			default:
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	require.NoError(t, err)
	return client, requests
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("split a-price yields 249.99", func(t *testing.T) {
		t.Parallel()

		html := "<html><body>\n<h1 id=\"productTitle\">Apple AirPods Pro (2nd Generation)</h1>\n<span class=\"price\">249.99</span>\n</body></html>"
		client, requests := newTestServer(t, http.StatusOK,
			modelResponse(`{"cost": 249.99, "description": "Apple AirPods Pro (2nd Generation) wireless earbuds."}`))

		result, err := gemini.NewExtractor(client, "").Extract(context.Background(), html)

		require.NoError(t, err)
		assert.InDelta(t, 249.99, result.Cost, 0.0001)
		assert.Contains(t, strings.ToLower(result.Description), "airpods")

		req := <-requests
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Contains(t, req.Contents[0].Parts[0].Text, html)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
		assert.NotEmpty(t, req.GenerationConfig.ResponseSchema)
		require.Len(t, req.SystemInstruction.Parts, 1)
		assert.Equal(t, amzncost.ExtractionInstruction, req.SystemInstruction.Parts[0].Text)
	})

	t.Run("dollar price yields 399.99", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestServer(t, http.StatusOK,
			modelResponse(`{"cost": 399.99, "description": "Sony WH-1000XM5 wireless noise cancelling headphones."}`))

		result, err := gemini.NewExtractor(client, "").Extract(context.Background(), `<span class="price">$399.99</span>`)

		require.NoError(t, err)
		assert.InDelta(t, 399.99, result.Cost, 0.0001)
		assert.NotEmpty(t, result.Description)
	})

	t.Run("thousands separator yields 3499", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestServer(t, http.StatusOK,
			modelResponse(`{"cost": 3499, "description": "MacBook Pro 16-inch with M3 Max chip."}`))

		result, err := gemini.NewExtractor(client, "").Extract(context.Background(), `<div class="price-tag">$3,499.00</div>`)

		require.NoError(t, err)
		assert.InDelta(t, 3499.0, result.Cost, 0.0001)
	})

	t.Run("uses the requested model", func(t *testing.T) {
		t.Parallel()

		paths := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths <- r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(modelResponse(`{"cost": 1, "description": "x"}`)))
		}))
		defer server.Close()

		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:      "test-key",
			Backend:     genai.BackendGeminiAPI,
			HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
		})
		require.NoError(t, err)

		_, err = gemini.NewExtractor(client, "gemini-2.5-pro").Extract(context.Background(), "<html></html>")

		require.NoError(t, err)
		assert.Contains(t, <-paths, "gemini-2.5-pro:generateContent")
	})

	t.Run("returns EEXTRACT for malformed model output", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestServer(t, http.StatusOK, modelResponse("The price is $5"))

		_, err := gemini.NewExtractor(client, "").Extract(context.Background(), "<html></html>")

		require.Error(t, err)
		assert.Equal(t, amzncost.EEXTRACT, amzncost.ErrorCode(err))
	})

	t.Run("passes API errors through unmodified", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestServer(t, http.StatusBadRequest,
			`{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`)

		_, err := gemini.NewExtractor(client, "").Extract(context.Background(), "<html></html>")

		require.Error(t, err)
		assert.Equal(t, amzncost.EINTERNAL, amzncost.ErrorCode(err))
		assert.Contains(t, amzncost.ErrorMessage(err), "API key not valid")
	})

	t.Run("returns EUNAVAILABLE without client", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewExtractor(nil, "").Extract(context.Background(), "<html></html>")

		require.Error(t, err)
		assert.Equal(t, amzncost.EUNAVAILABLE, amzncost.ErrorCode(err))
	})
}

func TestBuildConfig_ConstrainsOutputToSchema(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Equal(t, genai.TypeObject, config.ResponseSchema.Type)
	assert.ElementsMatch(t, []string{"cost", "description"}, config.ResponseSchema.Required)
	assert.Equal(t, genai.TypeNumber, config.ResponseSchema.Properties["cost"].Type)
	assert.Equal(t, genai.TypeString, config.ResponseSchema.Properties["description"].Type)
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "thousands separators")
}

func TestBuildConfig_SetsZeroTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.0, *config.Temperature, 0.001)
}
