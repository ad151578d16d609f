package observe

// Call is an opaque description of a single mock invocation: method identity
// plus arguments. The recorder holds it by reference only; the dispatching
// mock owns it.
type Call interface {
	// Method is the invoked method name.
	Method() string
	// Args are the arguments the method was invoked with.
	Args() []any
}

// Provider fabricates return values for a mock call that has no configured
// behavior. Mocks carry a swappable Provider so the recorder can suppress
// their normal defaults during a recording session.
type Provider interface {
	Values(c Call) []any
}

// Mocked is the surface the recorder needs from a mock instance: access to
// its current default-value provider.
type Mocked interface {
	Provider() Provider
	SetProvider(p Provider)
}

// Matcher is an argument matcher as seen by the recorder. Evaluation
// semantics live in pkg/match; the recorder only tracks which matcher
// instances were evaluated, and when.
type Matcher interface {
	Matches(v any) bool
	String() string
}

// Placeholder is the value fabricated for every result of a call observed
// during recording. It tags the result as a reconstruction artifact and
// remembers which call produced it.
type Placeholder struct {
	Origin Call
}

// recordingProvider replaces a mock's provider while a session observes it.
// It yields a single Placeholder per call so synthesized returns cannot be
// confused with the mock's configured defaults.
type recordingProvider struct{}

func (recordingProvider) Values(c Call) []any {
	return []any{Placeholder{Origin: c}}
}

// observation is one timestamped entry in a recorder's log. kind selects the
// variant; exactly two exist.
type observation struct {
	kind observationKind
	ts   uint64

	// call variant
	mock  Mocked
	call  Call
	saved Provider // the mock's provider before this observation

	// match variant
	matcher Matcher
}

type observationKind uint8

const (
	observationCall observationKind = iota
	observationMatch
)

// MatchRun is a non-owning window over the contiguous run of matcher
// observations immediately preceding a call observation. It indexes into the
// backing recorder's log and never copies matcher references; it must not be
// used after the recorder is released.
type MatchRun struct {
	rec    *Recorder
	offset int
	count  int
}

// Len is the number of matcher evaluations in the run.
func (mr MatchRun) Len() int { return mr.count }

// At returns the matcher at position i within the run, in evaluation order.
func (mr MatchRun) At(i int) Matcher {
	if i < 0 || i >= mr.count {
		panic("observe: MatchRun index out of range")
	}
	return mr.rec.log[mr.offset+i].matcher
}

// Matchers returns the run's matchers as a slice, in evaluation order.
func (mr MatchRun) Matchers() []Matcher {
	out := make([]Matcher, mr.count)
	for i := range out {
		out[i] = mr.rec.log[mr.offset+i].matcher
	}
	return out
}
