// Package middleware
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Chain applies middlewares in the order given to New: the first one is the
// outermost.
type Chain struct {
	middlewares []Middleware
}

func New(mws ...Middleware) *Chain {
	return &Chain{middlewares: append([]Middleware{}, mws...)}
}

func (c *Chain) Then(h http.Handler) http.Handler {
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		h = c.middlewares[i](h)
	}
	return h
}
