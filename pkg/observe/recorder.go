package observe

import (
	"iter"
	"log/slog"

	"github.com/recmock/recmock/internal/id"
)

// Recorder owns an append-only, time-ordered log of observations and the
// monotonic counter that timestamps them. One Recorder exists per activation
// and receives events only while it is the top of its goroutine's stack; it
// stays queryable while shadowed by a nested activation and after release
// only until the activation handle is dropped.
type Recorder struct {
	id      string
	counter uint64
	log     []observation
	logger  *slog.Logger
}

func newRecorder(logger *slog.Logger) *Recorder {
	return &Recorder{id: id.Short(), logger: logger}
}

// ID is the recorder's unique identifier, used only for diagnostics.
func (r *Recorder) ID() string { return r.id }

// NextTimestamp pre-increments and returns the observation counter. It is
// the sole source of ordering truth; callers that need to bracket a
// sub-range of events (all matches observed while evaluating one argument,
// say) take a timestamp before and after and query MatchesBetween.
func (r *Recorder) NextTimestamp() uint64 {
	r.counter++
	return r.counter
}

// OnCall appends a call observation and suppresses the mock's default-value
// provider for the rest of the session: the provider in effect at this
// moment is saved on the observation and a recording provider is installed
// in its place. Release restores saved providers in reverse order.
//
// OnCall must only be invoked on the current recorder; dispatch code is
// expected to route through ReportCall, which checks.
func (r *Recorder) OnCall(m Mocked, c Call) {
	r.mustBeCurrent("OnCall")
	ts := r.NextTimestamp()
	r.log = append(r.log, observation{
		kind:  observationCall,
		ts:    ts,
		mock:  m,
		call:  c,
		saved: m.Provider(),
	})
	m.SetProvider(recordingProvider{})
	r.logger.Debug("observed call", "recorder", r.id, "ts", ts, "method", c.Method())
}

// OnMatch appends a matcher observation. Same precondition as OnCall.
func (r *Recorder) OnMatch(m Matcher) {
	r.mustBeCurrent("OnMatch")
	ts := r.NextTimestamp()
	r.log = append(r.log, observation{kind: observationMatch, ts: ts, matcher: m})
	r.logger.Debug("observed match", "recorder", r.id, "ts", ts, "matcher", m.String())
}

func (r *Recorder) mustBeCurrent(op string) {
	cur, ok := Current()
	if !ok || cur != r {
		panic("observe: " + op + " on a recorder that is not current; report events through ReportCall/ReportMatch")
	}
}

// LastCallResult is the outcome of a successful LastCall query: the mock and
// call of the final log entry plus the contiguous run of matcher evaluations
// immediately preceding it.
type LastCallResult struct {
	Mock Mocked
	Call Call
	Run  MatchRun
}

// LastCall inspects the final log entry. If it is a call observation it
// returns that call together with the run of matcher observations directly
// before it, scanning backward until a prior call observation or the start
// of the log. Matchers evaluated as arguments to a call are always observed
// before the call itself and never interleave with another call's matchers,
// because evaluation and dispatch are sequential on one goroutine, so the
// backward scan recovers exactly this call's argument matchers.
//
// Returns ok=false for an empty log or a log whose final entry is a matcher
// observation.
func (r *Recorder) LastCall() (LastCallResult, bool) {
	last := len(r.log) - 1
	if last < 0 || r.log[last].kind != observationCall {
		return LastCallResult{}, false
	}
	start := last
	for start > 0 && r.log[start-1].kind == observationMatch {
		start--
	}
	return LastCallResult{
		Mock: r.log[last].mock,
		Call: r.log[last].call,
		Run:  MatchRun{rec: r, offset: start, count: last - start},
	}, true
}

// LastMatch returns the matcher of the final log entry, if the log is
// non-empty and ends in a matcher observation.
func (r *Recorder) LastMatch() (Matcher, bool) {
	last := len(r.log) - 1
	if last < 0 || r.log[last].kind != observationMatch {
		return nil, false
	}
	return r.log[last].matcher, true
}

// MatchesBetween yields the matchers whose timestamps fall in the half-open
// range [from, to), in log order. The sequence is a pure read over the log:
// finite, restartable, and empty for a recorder that has observed nothing.
func (r *Recorder) MatchesBetween(from, to uint64) iter.Seq[Matcher] {
	return func(yield func(Matcher) bool) {
		for i := range r.log {
			o := &r.log[i]
			if o.kind != observationMatch || o.ts < from || o.ts >= to {
				continue
			}
			if !yield(o.matcher) {
				return
			}
		}
	}
}

// teardown releases every call observation's suppression effect in reverse
// chronological order, so a mock observed more than once ends up with the
// provider it had before its first observation in this session.
func (r *Recorder) teardown() {
	for i := len(r.log) - 1; i >= 0; i-- {
		o := &r.log[i]
		if o.kind != observationCall {
			continue
		}
		o.mock.SetProvider(o.saved)
		r.logger.Debug("restored provider", "recorder", r.id, "ts", o.ts, "method", o.call.Method())
	}
}
