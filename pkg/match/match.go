// Package match provides argument matchers for recmock. Every evaluation of
// a matcher is reported to the goroutine's current recorder (when a
// recording session is active), which is how a recorded setup or
// verification expression later recovers which matchers described which
// call's arguments.
package match

import (
	"fmt"
	"reflect"
	"regexp"
	"sync"

	"github.com/recmock/recmock/pkg/observe"
)

// Matcher is re-exported for callers that build matcher slices without
// importing observe.
type Matcher = observe.Matcher

// report notifies the current recorder that m was just evaluated, then
// passes the verdict through. It runs after evaluation so a matcher that
// panics is never reported, and before any enclosing call dispatch reports.
func report(m Matcher, matched bool) bool {
	observe.ReportMatch(m)
	return matched
}

type eqMatcher struct {
	want any
}

// Eq matches arguments deeply equal to want.
func Eq(want any) Matcher { return eqMatcher{want: want} }

func (m eqMatcher) Matches(v any) bool { return report(m, reflect.DeepEqual(v, m.want)) }
func (m eqMatcher) String() string     { return fmt.Sprintf("eq(%v)", m.want) }

type anyMatcher struct{}

// Any matches every argument.
func Any() Matcher { return anyMatcher{} }

func (m anyMatcher) Matches(any) bool { return report(m, true) }
func (m anyMatcher) String() string   { return "any()" }

type nilMatcher struct {
	negate bool
}

// Nil matches nil arguments, including typed nil pointers, maps, slices,
// channels, functions, and interfaces.
func Nil() Matcher { return nilMatcher{} }

// NotNil matches everything Nil does not.
func NotNil() Matcher { return nilMatcher{negate: true} }

func (m nilMatcher) Matches(v any) bool { return report(m, isNil(v) != m.negate) }

func (m nilMatcher) String() string {
	if m.negate {
		return "notNil()"
	}
	return "nil()"
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

type predMatcher struct {
	fn   func(any) bool
	desc string
}

// Pred matches arguments for which fn returns true. desc appears in failure
// messages and logs.
func Pred(fn func(any) bool, desc string) Matcher {
	return predMatcher{fn: fn, desc: desc}
}

func (m predMatcher) Matches(v any) bool { return report(m, m.fn(v)) }
func (m predMatcher) String() string     { return fmt.Sprintf("pred(%s)", m.desc) }

type regexpMatcher struct {
	re *regexp.Regexp
}

// Regexp matches string or []byte arguments against pattern. The pattern is
// compiled once, at construction.
func Regexp(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	return regexpMatcher{re: re}, nil
}

func (m regexpMatcher) Matches(v any) bool {
	var matched bool
	switch s := v.(type) {
	case string:
		matched = m.re.MatchString(s)
	case []byte:
		matched = m.re.Match(s)
	}
	return report(m, matched)
}

func (m regexpMatcher) String() string { return fmt.Sprintf("regexp(%s)", m.re.String()) }

// Captor matches every argument and stores it for inspection after the call
// chain completes.
type Captor struct {
	mu   sync.Mutex
	args []any
}

// Capture creates a capturing matcher.
func Capture() *Captor { return &Captor{} }

func (m *Captor) Matches(v any) bool {
	m.mu.Lock()
	m.args = append(m.args, v)
	m.mu.Unlock()
	return report(m, true)
}

func (m *Captor) String() string { return "capture()" }

// Last returns the most recently captured argument.
func (m *Captor) Last() (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.args) == 0 {
		return nil, false
	}
	return m.args[len(m.args)-1], true
}

// All returns every captured argument in evaluation order.
func (m *Captor) All() []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]any, len(m.args))
	copy(out, m.args)
	return out
}
