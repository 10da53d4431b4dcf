package wasmconfig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmjit-omr/winter/internal/sandbox"
	"github.com/wasmjit-omr/winter/internal/wasmconfig"
)

func TestLoadAppliesMaxSandboxesCeiling(t *testing.T) {
	t.Setenv("WINTER_MAX_SANDBOXES", "1")
	defer sandbox.SetMaxSandboxes(0)

	cfg, err := wasmconfig.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.MaxSandboxes)

	sandbox.New()
	assert.Panics(t, func() { sandbox.New() })
}
