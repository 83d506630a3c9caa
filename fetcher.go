package amzncost

import (
	"context"
	"strings"
)

// MarketplaceDomains are the substrings that mark a URL as belonging to an
// Amazon marketplace. "amazon." covers amazon.com and the regional stores,
// "amzn." covers the amzn.to / amzn.eu short links.
var MarketplaceDomains = []string{"amazon.", "amzn."}

// Fetcher retrieves the HTML of a product page.
type Fetcher interface {
	// Fetch validates the URL with ValidateProductURL and retrieves the page.
	// Returns EINVALID for a non-marketplace URL without touching the network,
	// and EFETCH for transport failures or non-success responses.
	Fetch(ctx context.Context, url string) (*ProductPage, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// ValidateProductURL returns EINVALID unless url contains a marketplace
// domain marker.
func ValidateProductURL(url string) error {
	lower := strings.ToLower(url)
	for _, domain := range MarketplaceDomains {
		if strings.Contains(lower, domain) {
			return nil
		}
	}
	return Errorf(EINVALID, "Invalid Amazon product URL: %s", url)
}
