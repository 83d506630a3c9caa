// Package amzncost fetches a single Amazon product page, reduces it to a
// minimal HTML fragment carrying the product title and price, and asks a
// language model to turn that fragment into a structured price and
// description.
//
// This package contains domain types and interfaces. Implementations live in
// subdirectories named after their primary dependency (e.g., http/, goquery/,
// gemini/).
package amzncost
