// Package wasmassert provides the uniform fatal-invariant-violation primitive
// used throughout the sandbox, memory and linker packages.
package wasmassert

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Require panics, via zerolog's Panic level, if cond is false. It is the Go
// analogue of the WASSERT macro: every fatal invariant violation documented
// in the core goes through here rather than being propagated as an error
// value.
//
// No non-test code in this module recovers the panic, so it ends the
// process. Callers that need a non-fatal failure path use a boolean return
// or an error value instead.
func Require(cond bool, format string, args ...interface{}) {
	if cond {
		return
	}

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "???", 0
	}

	msg := fmt.Sprintf(format, args...)
	err := errors.Errorf("%s:%d: invariant violation: %s", file, line, msg)

	log.Panic().Stack().Err(err).Msg("fatal invariant violation")
}
