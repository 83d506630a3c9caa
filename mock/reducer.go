package mock

import "github.com/fwojciec/amzncost"

var _ amzncost.Reducer = (*Reducer)(nil)

// Reducer is a mock implementation of amzncost.Reducer.
type Reducer struct {
	ReduceFn func(html string) *amzncost.ReducedContent
}

func (r *Reducer) Reduce(html string) *amzncost.ReducedContent {
	return r.ReduceFn(html)
}
