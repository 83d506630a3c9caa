package amzncost

// Reducer shrinks a product page down to its title and price.
type Reducer interface {
	// Reduce never fails: missing fields are replaced by TitleNotFound and
	// PriceNotFound, and the returned HTML is always a well-formed document.
	Reduce(html string) *ReducedContent
}
