package mock

import (
	"context"

	"github.com/fwojciec/amzncost"
)

var _ amzncost.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of amzncost.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*amzncost.ProductPage, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*amzncost.ProductPage, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
