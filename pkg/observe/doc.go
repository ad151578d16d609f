// Package observe implements the recording core of recmock: a per-goroutine
// stack of activation-scoped Recorders that mock dispatch and argument
// matchers report into while a setup or verification expression executes.
//
// A caller activates a Recorder, runs the user's function literal, queries
// the recorder's observation log to reconstruct what was called with which
// matchers, and releases the activation. While a Recorder is active, every
// mock call and matcher evaluation on that goroutine is appended to its log
// with a strictly increasing timestamp:
//
//	act := observe.Activate()
//	defer act.Release()
//	userFn()
//	if res, ok := act.Recorder().LastCall(); ok {
//	    // res.Call plus the matchers evaluated for its arguments
//	}
//
// Activations nest: an inner Recorder shadows the outer one until released,
// so recording sessions never interleave, only nest. Recording is strictly
// goroutine-scoped; concurrent goroutines each see an independent stack.
//
// Observing a call also suppresses the mock's default-value provider for the
// rest of the session, replacing it with a provider that fabricates
// Placeholder values, so return values synthesized during recording are
// recognizably reconstruction artifacts rather than the mock's real
// defaults. Release restores every saved provider in reverse order, on
// every exit path.
package observe
