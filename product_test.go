package amzncost_test

import (
	"testing"

	"github.com/fwojciec/amzncost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeExtractionResult(t *testing.T) {
	t.Parallel()

	t.Run("decodes cost and description", func(t *testing.T) {
		t.Parallel()

		result, err := amzncost.DecodeExtractionResult(`{"cost": 249.99, "description": "Apple AirPods Pro (2nd Generation)"}`)

		require.NoError(t, err)
		assert.InDelta(t, 249.99, result.Cost, 0.0001)
		assert.Equal(t, "Apple AirPods Pro (2nd Generation)", result.Description)
	})

	t.Run("tolerates surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		result, err := amzncost.DecodeExtractionResult("\n  {\"cost\": 3499, \"description\": \"MacBook Pro\"}\n")

		require.NoError(t, err)
		assert.InDelta(t, 3499.0, result.Cost, 0.0001)
	})

	t.Run("does not validate values", func(t *testing.T) {
		t.Parallel()

		result, err := amzncost.DecodeExtractionResult(`{"cost": -1, "description": ""}`)

		require.NoError(t, err)
		assert.InDelta(t, -1.0, result.Cost, 0.0001)
		assert.Empty(t, result.Description)
	})

	t.Run("returns EEXTRACT for empty output", func(t *testing.T) {
		t.Parallel()

		_, err := amzncost.DecodeExtractionResult("   ")

		require.Error(t, err)
		assert.Equal(t, amzncost.EEXTRACT, amzncost.ErrorCode(err))
	})

	t.Run("returns EEXTRACT for malformed output", func(t *testing.T) {
		t.Parallel()

		_, err := amzncost.DecodeExtractionResult(`cost: 12`)

		require.Error(t, err)
		assert.Equal(t, amzncost.EEXTRACT, amzncost.ErrorCode(err))
		assert.Contains(t, amzncost.ErrorMessage(err), "malformed extraction output")
	})
}
