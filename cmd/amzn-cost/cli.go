package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/amzncost"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Fetcher   amzncost.Fetcher
	Reducer   amzncost.Reducer
	Extractor amzncost.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Product string        `required:"" placeholder:"URL" help:"Amazon product URL"`
	Backend string        `enum:"gemini,openai" default:"gemini" help:"Extraction backend (${enum})"`
	Model   string        `help:"Model name (default depends on backend)"`
	Timeout time.Duration `short:"t" default:"10s" help:"Page fetch timeout"`
	Render  bool          `help:"Render the page in headless Chrome before reducing"`
}

// PriceCmd fetches one product page and prints its price and description.
type PriceCmd struct {
	URL string
}
