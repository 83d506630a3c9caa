// Package http provides an HTTP-based implementation of amzncost.Fetcher
// that requests product pages the way a desktop browser would.
package http

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/andybalholm/brotli"
	"github.com/fwojciec/amzncost"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// UserAgent is the browser identity sent with every request.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// AcceptLanguage is the Accept-Language value sent with every request.
const AcceptLanguage = "en-US,en;q=0.5"

// Ensure Fetcher implements amzncost.Fetcher at compile time.
var _ amzncost.Fetcher = (*Fetcher)(nil)

// DefaultHeaders returns the fixed browser-like header set.
func DefaultHeaders() http.Header {
	h := make(http.Header)
	h.Set("User-Agent", UserAgent)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", AcceptLanguage)
	h.Set("Accept-Encoding", "gzip, deflate, br")
	h.Set("DNT", "1")
	h.Set("Connection", "keep-alive")
	h.Set("Upgrade-Insecure-Requests", "1")
	return h
}

// Fetcher retrieves product pages using a single HTTP GET per call.
// Redirects are followed; failures are not retried.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch validates url and returns the page body decoded to UTF-8 text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*amzncost.ProductPage, error) {
	if err := amzncost.ValidateProductURL(url); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, amzncost.Wrapf(err, amzncost.EFETCH, "Failed to fetch Amazon page: %v", err)
	}
	req.Header = DefaultHeaders()

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, amzncost.Wrapf(err, amzncost.EFETCH, "Failed to fetch Amazon page: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, amzncost.Errorf(amzncost.EFETCH, "Failed to fetch Amazon page: HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, amzncost.Wrapf(err, amzncost.EFETCH, "Failed to fetch Amazon page: %v", err)
	}

	return &amzncost.ProductPage{URL: url, HTML: body}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// readBody undoes the Content-Encoding and converts the body to UTF-8. The
// transport leaves compressed bodies alone because Accept-Encoding is set
// explicitly on the request.
func readBody(resp *http.Response) (string, error) {
	r, err := decodeContent(resp.Body, resp.Header.Get("Content-Encoding"))
	if err != nil {
		return "", err
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	enc, name, certain := charset.DetermineEncoding(body, resp.Header.Get("Content-Type"))
	if name == "utf-8" || (!certain && utf8.Valid(body)) {
		return string(body), nil
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("decoding %s body: %w", name, err)
	}
	return string(decoded), nil
}

func decodeContent(body io.Reader, encoding string) (io.Reader, error) {
	encoding = strings.ToLower(strings.TrimSpace(encoding))
	if encoding == "" || encoding == "identity" {
		return body, nil
	}

	// An empty body is an empty page whatever the declared encoding.
	br := bufio.NewReader(body)
	if _, err := br.Peek(1); err == io.EOF {
		return br, nil
	}

	switch encoding {
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("decoding gzip body: %w", err)
		}
		return zr, nil
	case "deflate":
		return newDeflateReader(br)
	case "br":
		return brotli.NewReader(br), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}

// newDeflateReader accepts both zlib-wrapped and raw deflate streams, since
// servers disagree on what "deflate" means.
func newDeflateReader(br *bufio.Reader) (io.Reader, error) {
	header, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding deflate body: %w", err)
	}
	if len(header) == 2 && isZlibHeader(header[0], header[1]) {
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("decoding deflate body: %w", err)
		}
		return zr, nil
	}
	return flate.NewReader(br), nil
}

func isZlibHeader(cmf, flg byte) bool {
	return cmf&0x0f == 8 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}
