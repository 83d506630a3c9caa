// Package goquery implements amzncost.Reducer on top of goquery CSS
// selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/amzncost"
)

// Selector matches elements by id or class, restricted to a set of tags.
type Selector struct {
	Attr  string // "id" or "class"
	Value string
	Tags  []string
}

// CSS returns the selector as a CSS selector group, one entry per tag.
func (s Selector) CSS() string {
	sep := "#"
	if s.Attr == "class" {
		sep = "."
	}
	parts := make([]string, len(s.Tags))
	for i, tag := range s.Tags {
		parts[i] = tag + sep + s.Value
	}
	return strings.Join(parts, ", ")
}

var (
	titleTags = []string{"h1", "span", "div"}
	priceTags = []string{"span", "div"}
)

// TitleSelectors are tried in order; the first one with a match wins.
var TitleSelectors = []Selector{
	{Attr: "id", Value: "productTitle", Tags: titleTags},
	{Attr: "id", Value: "title", Tags: titleTags},
	{Attr: "class", Value: "product-title", Tags: titleTags},
}

// PriceSelectors are tried in order; the first one with a match wins.
var PriceSelectors = []Selector{
	{Attr: "class", Value: "a-price", Tags: priceTags},
	{Attr: "class", Value: "price", Tags: priceTags},
	{Attr: "class", Value: "priceblock_ourprice", Tags: priceTags},
	{Attr: "id", Value: "priceblock_ourprice", Tags: priceTags},
}

// Ensure Reducer implements amzncost.Reducer at compile time.
var _ amzncost.Reducer = (*Reducer)(nil)

// Reducer keeps only the product title and price of a page.
type Reducer struct{}

// NewReducer creates a new Reducer.
func NewReducer() *Reducer {
	return &Reducer{}
}

// Reduce finds the title and price and renders them into a minimal document.
// Unparseable input is treated like a page with neither field.
func (r *Reducer) Reduce(src string) *amzncost.ReducedContent {
	title := amzncost.TitleNotFound
	price := amzncost.PriceNotFound

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err == nil {
		if text, ok := findFirst(doc, TitleSelectors); ok {
			title = text
		}
		if text, ok := findFirst(doc, PriceSelectors); ok {
			price = text
		}
	}

	return &amzncost.ReducedContent{
		Title: title,
		Price: price,
		HTML:  Render(title, price),
	}
}

// findFirst returns the stripped text of the first element, in document
// order, matched by the first selector that matches anything. An element
// with no text still counts as a match.
func findFirst(doc *goquery.Document, selectors []Selector) (string, bool) {
	for _, s := range selectors {
		sel := doc.Find(s.CSS()).First()
		if sel.Length() > 0 {
			return strippedText(sel.Get(0)), true
		}
	}
	return "", false
}
