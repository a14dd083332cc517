// Package middleware provides the HTTP middleware stack used by modules:
// CORS, request logging, and panic recovery.
package middleware

import (
	"net/http"
	"slices"
)

// System manages an ordered stack of HTTP middleware. The first middleware
// added is the outermost.
type System interface {
	Use(mws ...func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
	Len() int
}

type mw struct {
	stack []func(http.Handler) http.Handler
}

// New creates an empty middleware System.
func New() System {
	return &mw{}
}

func (m *mw) Use(mws ...func(http.Handler) http.Handler) {
	m.stack = append(m.stack, mws...)
}

func (m *mw) Apply(handler http.Handler) http.Handler {
	for _, fn := range slices.Backward(m.stack) {
		handler = fn(handler)
	}
	return handler
}

func (m *mw) Len() int {
	return len(m.stack)
}
