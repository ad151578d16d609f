// Package gid resolves the numeric id of the calling goroutine.
//
// The runtime does not expose goroutine ids, but the first line of a
// stack trace is the stable, documented form "goroutine N [status]:".
// Parsing that header is the standard way to key ambient per-goroutine
// state when an explicit handle cannot be threaded through the call path.
package gid

import (
	"runtime"
	"strconv"
	"strings"
)

// Current returns the id of the calling goroutine.
func Current() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	header := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	idField, _, _ := strings.Cut(header, " ")
	id, err := strconv.ParseUint(idField, 10, 64)
	if err != nil {
		panic("gid: malformed stack header: " + header)
	}
	return id
}
