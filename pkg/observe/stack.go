package observe

import (
	"log/slog"
	"sync"

	"github.com/recmock/recmock/internal/gid"
	"github.com/recmock/recmock/pkg/logging"
)

// stacks maps goroutine id to that goroutine's activation stack. An entry
// exists only between a goroutine's first Activate and the release of its
// last activation; goroutines that never record pay nothing. Each stack is
// touched only by its owning goroutine, so the map is the only shared state.
var stacks sync.Map // uint64 -> *stack

type stack struct {
	recs []*Recorder
}

// Option configures an activation.
type Option func(*Activation)

// WithLogger attaches a logger to the activation's recorder. Debug-level
// events trace each observation and teardown step. The default logger
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(a *Activation) { a.logger = l }
}

// Activation is the scoped handle for one recording session. It owns exactly
// one Release, which must run on every exit path of the guarded code;
// callers defer it immediately:
//
//	act := observe.Activate()
//	defer act.Release()
type Activation struct {
	rec      *Recorder
	gid      uint64
	logger   *slog.Logger
	released bool
}

// Activate creates a new Recorder and pushes it onto the calling goroutine's
// stack. Until Release, every reported event on this goroutine routes to the
// new recorder, shadowing any outer activation.
func Activate(opts ...Option) *Activation {
	a := &Activation{gid: gid.Current(), logger: logging.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	a.rec = newRecorder(a.logger)

	v, _ := stacks.LoadOrStore(a.gid, &stack{})
	s := v.(*stack)
	s.recs = append(s.recs, a.rec)
	a.logger.Debug("recorder activated", "recorder", a.rec.id, "depth", len(s.recs))
	return a
}

// Recorder exposes the activation's recorder for queries. The recorder stays
// queryable while shadowed by a nested activation; it just receives no
// events until the inner activation releases.
func (a *Activation) Recorder() *Recorder { return a.rec }

// Release pops the recorder off the stack and runs teardown, restoring every
// suppressed default-value provider in reverse order. It must be called
// exactly once, from the activating goroutine, while the recorder is the top
// of the stack; anything else means a collaborator bypassed the scoped
// handle and recording state is corrupt, so Release panics rather than
// guessing.
func (a *Activation) Release() {
	if a.released {
		panic("observe: activation released twice")
	}

	g := gid.Current()
	if g != a.gid {
		panic("observe: activation released from a different goroutine than it was activated on")
	}
	v, ok := stacks.Load(g)
	if !ok {
		panic("observe: release with no active recorder on this goroutine")
	}
	s := v.(*stack)
	top := len(s.recs) - 1
	if s.recs[top] != a.rec {
		panic("observe: release out of LIFO order")
	}
	a.released = true

	a.rec.teardown()
	s.recs[top] = nil
	s.recs = s.recs[:top]
	if top == 0 {
		stacks.Delete(g)
	}
	a.logger.Debug("recorder released", "recorder", a.rec.id, "observations", len(a.rec.log))
}

// Current returns the recorder at the top of the calling goroutine's stack,
// or ok=false if nothing is being recorded on this goroutine.
func Current() (*Recorder, bool) {
	v, ok := stacks.Load(gid.Current())
	if !ok {
		return nil, false
	}
	s := v.(*stack)
	if len(s.recs) == 0 {
		return nil, false
	}
	return s.recs[len(s.recs)-1], true
}

// ReportCall notifies the current recorder, if any, that a mock call was
// dispatched. Mock dispatch invokes it at most once per actual call, after
// the call's target and arguments are fully resolved but before any return
// value is produced, so the suppression effect is installed in time.
func ReportCall(m Mocked, c Call) {
	if r, ok := Current(); ok {
		r.OnCall(m, c)
	}
}

// ReportMatch notifies the current recorder, if any, that a matcher was just
// evaluated. Matchers invoke it once per evaluation, before any enclosing
// call is reported.
func ReportMatch(m Matcher) {
	if r, ok := Current(); ok {
		r.OnMatch(m)
	}
}
