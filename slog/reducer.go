package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/amzncost"
)

// Ensure LoggingReducer implements amzncost.Reducer.
var _ amzncost.Reducer = (*LoggingReducer)(nil)

// LoggingReducer wraps a Reducer with structured logging.
type LoggingReducer struct {
	next   amzncost.Reducer
	logger *slog.Logger
}

// NewLoggingReducer creates a new LoggingReducer.
func NewLoggingReducer(next amzncost.Reducer, logger *slog.Logger) *LoggingReducer {
	return &LoggingReducer{next: next, logger: logger}
}

// Reduce delegates to the wrapped reducer and logs what was found.
func (r *LoggingReducer) Reduce(html string) *amzncost.ReducedContent {
	begin := time.Now()
	rc := r.next.Reduce(html)
	r.logger.Info("reduce",
		"bytes_in", len(html),
		"bytes_out", len(rc.HTML),
		"title", rc.Title,
		"price", rc.Price,
		"duration", time.Since(begin),
	)
	return rc
}
