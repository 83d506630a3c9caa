package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/amzncost"
	"github.com/fwojciec/amzncost/gemini"
	"github.com/fwojciec/amzncost/goquery"
	amzhttp "github.com/fwojciec/amzncost/http"
	"github.com/fwojciec/amzncost/openai"
	"github.com/fwojciec/amzncost/rod"
	amzslog "github.com/fwojciec/amzncost/slog"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

func main() {
	// Third-party clients write warnings through the standard logger. Stderr
	// is reserved for the JSON error line; AMZN_COST_LOG_LEVEL enables our
	// own structured logs instead.
	log.SetOutput(io.Discard)

	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Env replaces the process environment when non-nil.
	Env map[string]string

	// Services for end-to-end testing. When nil they are built from flags
	// and configuration.
	Fetcher   amzncost.Fetcher
	Extractor amzncost.Extractor
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. Any error is also written
// to stderr as a single JSON object.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := m.run(ctx, args, stdout, stderr); err != nil {
		writeError(stderr, err)
		return err
	}
	return nil
}

func (m *Main) run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	// kong calls Exit after printing help; parsing continues afterwards, so
	// the flag stops the run.
	var helped bool
	parser, err := kong.New(cli,
		kong.Name("amzn-cost"),
		kong.Description("Fetch an Amazon product's price and description as JSON.\n\nExample:\n  amzn-cost --product=https://www.amazon.com/product-name/dp/XXXXXXXXXX/"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { helped = true }),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if helped {
		return nil
	}
	if err != nil {
		return err
	}

	if err := amzncost.ValidateProductURL(cli.Product); err != nil {
		return err
	}

	cfg, err := LoadConfig(m.Env)
	if err != nil {
		return err
	}

	logger, err := NewLogger(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}
	logger = logger.With("run", uuid.NewString())

	// Resolve the extraction client first so a missing key fails before any
	// network traffic.
	extractor := m.Extractor
	if extractor == nil {
		extractor, err = newExtractor(ctx, cli, cfg)
		if err != nil {
			return err
		}
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher, err = newFetcher(cli)
		if err != nil {
			return err
		}
		defer fetcher.Close()
	}

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Fetcher:   amzslog.NewLoggingFetcher(fetcher, logger),
		Reducer:   amzslog.NewLoggingReducer(goquery.NewReducer(), logger),
		Extractor: amzslog.NewLoggingExtractor(extractor, logger),
	}

	cmd := &PriceCmd{URL: cli.Product}
	return cmd.Run(deps)
}

func newExtractor(ctx context.Context, cli *CLI, cfg Config) (amzncost.Extractor, error) {
	switch cli.Backend {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, amzncost.Errorf(amzncost.EUNAVAILABLE, "OPENAI_API_KEY not set. Get a key at https://platform.openai.com/api-keys")
		}
		client := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
		return openai.NewExtractor(client, cli.Model), nil
	default:
		if cfg.GeminiAPIKey == "" {
			return nil, amzncost.Errorf(amzncost.EUNAVAILABLE, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, amzncost.Wrapf(err, amzncost.EUNAVAILABLE, "failed to connect to Gemini API: %v", err)
		}
		return gemini.NewExtractor(client, cli.Model), nil
	}
}

func newFetcher(cli *CLI) (amzncost.Fetcher, error) {
	if !cli.Render {
		return amzhttp.NewFetcher(amzhttp.WithTimeout(cli.Timeout)), nil
	}
	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
	if err != nil {
		return nil, amzncost.Wrapf(err, amzncost.EFETCH, "failed to start browser (Chrome or Chromium must be installed): %v", err)
	}
	return fetcher, nil
}

// writeError writes {"error": message} followed by a newline.
func writeError(w io.Writer, err error) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(struct {
		Error string `json:"error"`
	}{Error: amzncost.ErrorMessage(err)})
}
