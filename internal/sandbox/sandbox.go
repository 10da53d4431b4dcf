// Package sandbox implements the isolation domain and type interner
// described by the host core's data model: each Sandbox owns exactly one
// TypeInterner, and WASM artifacts created in one sandbox must never be
// referenced from another.
package sandbox

import (
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/wasmjit-omr/winter/internal/wasmassert"
)

// Sandbox is a top-level isolation unit. All WASM artifacts (functions,
// memories, instances) created in a sandbox are confined to it; this core
// checks that confinement at link time rather than only documenting it.
type Sandbox struct {
	id    uuid.UUID
	types TypeInterner

	mu     sync.Mutex
	owned  []io.Closer
	closed bool
}

var (
	limitMu      sync.Mutex
	maxSandboxes int // 0 means unbounded
	liveCount    int
)

// SetMaxSandboxes configures the process-wide ceiling on concurrently live
// sandboxes enforced by New; zero means unbounded. wasmconfig.Load calls this
// once at startup with the configured limit.
func SetMaxSandboxes(n int) {
	limitMu.Lock()
	defer limitMu.Unlock()
	maxSandboxes = n
}

// New creates a fresh, empty sandbox. Exceeding the ceiling configured by
// SetMaxSandboxes is a fatal invariant violation: it signals an embedder
// misconfiguration (too many concurrent sandboxes for the deployment), not a
// recoverable per-module condition.
func New() *Sandbox {
	limitMu.Lock()
	defer limitMu.Unlock()

	wasmassert.Require(maxSandboxes == 0 || liveCount < maxSandboxes,
		"sandbox limit of %d reached", maxSandboxes)
	liveCount++

	return &Sandbox{id: uuid.New()}
}

// ID returns an opaque identifier for this sandbox, used in diagnostics and
// in the cross-sandbox-reference check performed during linking.
func (s *Sandbox) ID() uuid.UUID {
	return s.id
}

// Types returns the type interner owned by this sandbox.
func (s *Sandbox) Types() *TypeInterner {
	return &s.types
}

// Track registers c to be closed (in reverse registration order) when the
// sandbox itself is closed. Instances register themselves here at
// construction so that Sandbox.Close can enforce the reverse-of-construction
// teardown order the data model requires.
func (s *Sandbox) Track(c io.Closer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owned = append(s.owned, c)
}

// Close releases every artifact still tracked by this sandbox, most
// recently registered first, and reports the combined failures, if any.
// Close is idempotent.
func (s *Sandbox) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	limitMu.Lock()
	liveCount--
	limitMu.Unlock()

	var result *multierror.Error
	for i := len(s.owned) - 1; i >= 0; i-- {
		if err := s.owned[i].Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	s.owned = nil
	return result.ErrorOrNil()
}
