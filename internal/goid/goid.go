// Package goid exposes the identity of the calling goroutine.
//
// Go deliberately hides goroutine IDs, but two rxflow components need a
// stable per-goroutine key: the trampoline scheduler's queue map and the
// reentrant gate used to serialize observers. Parsing the runtime.Stack
// header is the portable way to obtain one without linking runtime
// internals.
package goid

import (
	"bytes"
	"runtime"
	"strconv"
)

// ID returns the numeric identifier of the calling goroutine.
//
// The value is unique among live goroutines and is never reused while the
// goroutine runs. It must only be used as a map key or an ownership tag,
// never for cross-goroutine signalling.
func ID() int64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	// Header has the form "goroutine 123 [running]:".
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	id, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
