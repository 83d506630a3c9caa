package main

import (
	"encoding/json"

	"github.com/fwojciec/amzncost"
)

// Run executes fetch, reduce and extract in sequence and writes the result
// as one JSON object to stdout. Nothing is written on failure.
func (c *PriceCmd) Run(deps *Dependencies) error {
	if deps.Extractor == nil {
		return amzncost.Errorf(amzncost.EUNAVAILABLE, "extraction client not configured")
	}

	page, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	reduced := deps.Reducer.Reduce(page.HTML)

	result, err := deps.Extractor.Extract(deps.Ctx, reduced.HTML)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}
