package observe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recmock/recmock/pkg/observe"
)

type fakeCall struct {
	method string
	args   []any
}

func (c *fakeCall) Method() string { return c.method }
func (c *fakeCall) Args() []any    { return c.args }

type fakeProvider struct {
	tag string
}

func (p fakeProvider) Values(observe.Call) []any { return []any{p.tag} }

// fakeMock logs every provider swap so tests can assert restore order.
type fakeMock struct {
	provider observe.Provider
	swaps    []observe.Provider
}

func (m *fakeMock) Provider() observe.Provider { return m.provider }

func (m *fakeMock) SetProvider(p observe.Provider) {
	m.provider = p
	m.swaps = append(m.swaps, p)
}

type fakeMatcher struct {
	name string
}

func (m *fakeMatcher) Matches(any) bool { return true }
func (m *fakeMatcher) String() string   { return m.name }

func TestRecorder_TimestampsStrictlyIncrease(t *testing.T) {
	act := observe.Activate()
	defer act.Release()
	rec := act.Recorder()

	mk := &fakeMock{provider: fakeProvider{tag: "orig"}}
	var prev uint64
	for i := 0; i < 50; i++ {
		if i%3 == 0 {
			observe.ReportCall(mk, &fakeCall{method: "M"})
		} else {
			observe.ReportMatch(&fakeMatcher{name: "m"})
		}
		ts := rec.NextTimestamp()
		require.Greater(t, ts, prev)
		prev = ts
	}
}

func TestRecorder_LastCall(t *testing.T) {
	t.Run("run of two matchers", func(t *testing.T) {
		act := observe.Activate()
		defer act.Release()

		m1 := &fakeMatcher{name: "m1"}
		m2 := &fakeMatcher{name: "m2"}
		mk := &fakeMock{provider: fakeProvider{tag: "orig"}}
		c1 := &fakeCall{method: "Get"}

		observe.ReportMatch(m1)
		observe.ReportMatch(m2)
		observe.ReportCall(mk, c1)

		res, ok := act.Recorder().LastCall()
		require.True(t, ok)
		assert.Same(t, c1, res.Call)
		assert.Equal(t, mk, res.Mock)
		require.Equal(t, 2, res.Run.Len())
		assert.Same(t, m1, res.Run.At(0))
		assert.Same(t, m2, res.Run.At(1))
		assert.Equal(t, []observe.Matcher{m1, m2}, res.Run.Matchers())
	})

	t.Run("run stops at previous call", func(t *testing.T) {
		act := observe.Activate()
		defer act.Release()

		mk := &fakeMock{provider: fakeProvider{tag: "orig"}}
		m1 := &fakeMatcher{name: "m1"}
		c1 := &fakeCall{method: "Put"}

		observe.ReportCall(mk, &fakeCall{method: "Get"})
		observe.ReportMatch(m1)
		observe.ReportCall(mk, c1)

		res, ok := act.Recorder().LastCall()
		require.True(t, ok)
		assert.Same(t, c1, res.Call)
		require.Equal(t, 1, res.Run.Len())
		assert.Same(t, m1, res.Run.At(0))
	})

	t.Run("call with no matchers has empty run", func(t *testing.T) {
		act := observe.Activate()
		defer act.Release()

		mk := &fakeMock{provider: fakeProvider{tag: "orig"}}
		observe.ReportCall(mk, &fakeCall{method: "Get"})

		res, ok := act.Recorder().LastCall()
		require.True(t, ok)
		assert.Equal(t, 0, res.Run.Len())
	})

	t.Run("empty log", func(t *testing.T) {
		act := observe.Activate()
		defer act.Release()

		_, ok := act.Recorder().LastCall()
		assert.False(t, ok)
	})

	t.Run("log ending in matcher", func(t *testing.T) {
		act := observe.Activate()
		defer act.Release()

		observe.ReportMatch(&fakeMatcher{name: "m1"})
		_, ok := act.Recorder().LastCall()
		assert.False(t, ok)
	})
}

func TestRecorder_LastMatch(t *testing.T) {
	t.Run("matcher tail", func(t *testing.T) {
		act := observe.Activate()
		defer act.Release()

		m1 := &fakeMatcher{name: "m1"}
		observe.ReportMatch(m1)

		got, ok := act.Recorder().LastMatch()
		require.True(t, ok)
		assert.Same(t, m1, got)
	})

	t.Run("empty log", func(t *testing.T) {
		act := observe.Activate()
		defer act.Release()

		_, ok := act.Recorder().LastMatch()
		assert.False(t, ok)
	})

	t.Run("call tail", func(t *testing.T) {
		act := observe.Activate()
		defer act.Release()

		mk := &fakeMock{provider: fakeProvider{tag: "orig"}}
		observe.ReportMatch(&fakeMatcher{name: "m1"})
		observe.ReportCall(mk, &fakeCall{method: "Get"})

		_, ok := act.Recorder().LastMatch()
		assert.False(t, ok)
	})
}

func TestRecorder_MatchesBetween(t *testing.T) {
	collect := func(rec *observe.Recorder, from, to uint64) []observe.Matcher {
		var out []observe.Matcher
		for m := range rec.MatchesBetween(from, to) {
			out = append(out, m)
		}
		return out
	}

	t.Run("half-open range in log order", func(t *testing.T) {
		act := observe.Activate()
		defer act.Release()
		rec := act.Recorder()

		mk := &fakeMock{provider: fakeProvider{tag: "orig"}}
		m1 := &fakeMatcher{name: "m1"}
		m2 := &fakeMatcher{name: "m2"}
		m3 := &fakeMatcher{name: "m3"}

		observe.ReportMatch(m1) // ts 1
		from := rec.NextTimestamp()
		observe.ReportMatch(m2)                       // ts 3
		observe.ReportCall(mk, &fakeCall{method: "M"}) // ts 4
		observe.ReportMatch(m3)                       // ts 5
		to := rec.NextTimestamp()

		assert.Equal(t, []observe.Matcher{m2, m3}, collect(rec, from, to))
		// to is exclusive, from is inclusive
		assert.Equal(t, []observe.Matcher{m1, m2, m3}, collect(rec, 1, to))
		assert.Empty(t, collect(rec, to, to+10))
	})

	t.Run("restartable", func(t *testing.T) {
		act := observe.Activate()
		defer act.Release()
		rec := act.Recorder()

		m1 := &fakeMatcher{name: "m1"}
		observe.ReportMatch(m1)

		seq := rec.MatchesBetween(0, 100)
		assert.Equal(t, []observe.Matcher{m1}, func() []observe.Matcher {
			var out []observe.Matcher
			for m := range seq {
				out = append(out, m)
			}
			return out
		}())
		// second pass over the same sequence sees the same elements
		count := 0
		for range seq {
			count++
		}
		assert.Equal(t, 1, count)
	})

	t.Run("empty recorder", func(t *testing.T) {
		act := observe.Activate()
		defer act.Release()

		assert.Empty(t, collect(act.Recorder(), 0, 100))
	})
}
