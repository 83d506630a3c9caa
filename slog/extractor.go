package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/amzncost"
)

// Ensure LoggingExtractor implements amzncost.Extractor.
var _ amzncost.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with structured logging.
type LoggingExtractor struct {
	next   amzncost.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next amzncost.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the result.
func (e *LoggingExtractor) Extract(ctx context.Context, html string) (result *amzncost.ExtractionResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(html), "duration", time.Since(begin), "err", err}
		if result != nil {
			attrs = append(attrs, "cost", result.Cost)
		}
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(ctx, html)
}
