package mock

import (
	"context"

	"github.com/fwojciec/amzncost"
)

var _ amzncost.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of amzncost.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, html string) (*amzncost.ExtractionResult, error)
}

func (e *Extractor) Extract(ctx context.Context, html string) (*amzncost.ExtractionResult, error) {
	return e.ExtractFn(ctx, html)
}
