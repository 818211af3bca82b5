// Package wallettest provides an in-memory wallet provider for tests.
package wallettest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/spec-kit/unifin/internal/wallet"
)

// Handler answers one JSON-RPC method.
type Handler func(params []any) (any, error)

// Call is a recorded request.
type Call struct {
	Method string
	Params []any
}

// Provider is a scriptable wallet.Provider.
type Provider struct {
	mu        sync.Mutex
	handlers  map[string]Handler
	calls     []Call
	nextID    int
	listeners map[int]func([]string)
}

var _ wallet.Provider = (*Provider)(nil)

// New returns a provider that answers nothing until handlers are registered.
func New() *Provider {
	return &Provider{
		handlers:  make(map[string]Handler),
		listeners: make(map[int]func([]string)),
	}
}

// Handle registers h for method, replacing any previous handler.
func (p *Provider) Handle(method string, h Handler) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[method] = h
	return p
}

// Returns registers a static result for method.
func (p *Provider) Returns(method string, result any) *Provider {
	return p.Handle(method, func([]any) (any, error) { return result, nil })
}

// Fails registers a static error for method.
func (p *Provider) Fails(method string, err error) *Provider {
	return p.Handle(method, func([]any) (any, error) { return nil, err })
}

// Request dispatches to the registered handler and round-trips the result through JSON.
func (p *Provider) Request(ctx context.Context, method string, params []any, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	p.calls = append(p.calls, Call{Method: method, Params: params})
	h, ok := p.handlers[method]
	p.mu.Unlock()

	if !ok {
		return &wallet.ProviderError{Code: wallet.CodeMethodNotFound, Message: "the method " + method + " does not exist"}
	}
	result, err := h(params)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// OnAccountsChanged registers a listener.
func (p *Provider) OnAccountsChanged(fn func([]string)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	id := p.nextID
	p.listeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// EmitAccountsChanged fires accountsChanged synchronously.
func (p *Provider) EmitAccountsChanged(accounts []string) {
	p.mu.Lock()
	fns := make([]func([]string), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(accounts)
	}
}

// Listeners returns the number of registered listeners.
func (p *Provider) Listeners() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners)
}

// Calls returns the recorded requests.
func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// Called reports how many times method was requested.
func (p *Provider) Called(method string) int {
	n := 0
	for _, c := range p.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}
