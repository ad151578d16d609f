// Package mock provides the mock instance that recording sessions observe:
// a named object that dispatches method calls, keeps a call history, and
// fabricates return values for unconfigured calls through a swappable
// default-value provider.
package mock

import (
	"fmt"
	"sync"
	"time"

	"github.com/recmock/recmock/internal/id"
	"github.com/recmock/recmock/pkg/observe"
)

// Call describes one dispatched invocation. It implements observe.Call; the
// mock owns it, recorders hold it by reference only.
type Call struct {
	method string
	args   []any
	at     time.Time
}

// Method is the invoked method name.
func (c *Call) Method() string { return c.method }

// Args are the invocation arguments.
func (c *Call) Args() []any { return c.args }

// Arg returns the argument at position i.
func (c *Call) Arg(i int) any { return c.args[i] }

// At is when the call was dispatched.
func (c *Call) At() time.Time { return c.at }

func (c *Call) String() string {
	return fmt.Sprintf("%s(%d args)", c.method, len(c.args))
}

// Mock is a minimal mock instance. It has no generated proxy in front of it;
// callers (typically generated code or hand-written fakes) route method
// calls through Invoke.
type Mock struct {
	id   string
	name string

	mu       sync.Mutex
	provider observe.Provider
	returns  map[string][]any
	history  []*Call
}

// New creates a mock with the zero-value provider installed.
func New(name string) *Mock {
	return &Mock{
		id:       id.Short(),
		name:     name,
		provider: ZeroProvider{},
		returns:  make(map[string][]any),
	}
}

// ID is the mock's unique identifier.
func (m *Mock) ID() string { return m.id }

// Name is the human-readable name given at construction.
func (m *Mock) Name() string { return m.name }

// Invoke dispatches a method call: it records the call in the mock's
// history, reports it to the current recorder if one is active, and then
// produces return values. The report happens before any return value is
// fabricated so that a recording session's provider suppression is in
// effect for this very call. Configured return values (Returns) always win;
// the provider only fabricates values for unconfigured methods.
func (m *Mock) Invoke(method string, args ...any) []any {
	c := &Call{method: method, args: args, at: time.Now()}

	m.mu.Lock()
	m.history = append(m.history, c)
	m.mu.Unlock()

	observe.ReportCall(m, c)

	m.mu.Lock()
	vals, configured := m.returns[method]
	m.mu.Unlock()
	if configured {
		return vals
	}
	return m.Provider().Values(c)
}

// Returns configures fixed return values for a method.
func (m *Mock) Returns(method string, vals ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.returns[method] = vals
}

// Calls returns a copy of the mock's call history.
func (m *Mock) Calls() []*Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Call, len(m.history))
	copy(out, m.history)
	return out
}

// Reset clears the call history and configured returns. The provider is
// left untouched; an active recording session still owns it.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = nil
	m.returns = make(map[string][]any)
}

// Provider returns the mock's current default-value provider.
func (m *Mock) Provider() observe.Provider {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.provider
}

// SetProvider swaps the default-value provider. Recording sessions use this
// to suppress defaults for the duration of an activation.
func (m *Mock) SetProvider(p observe.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.provider = p
}

// ZeroProvider is the default provider: unconfigured calls produce no
// values.
type ZeroProvider struct{}

func (ZeroProvider) Values(observe.Call) []any { return nil }

// FixedProvider fabricates the same values for every unconfigured call.
type FixedProvider struct {
	Vals []any
}

func (p FixedProvider) Values(observe.Call) []any { return p.Vals }
