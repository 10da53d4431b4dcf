// Package wasmconfig loads ambient configuration for an embedding host,
// following the spf13/viper idiom used elsewhere in the pack this module was
// built alongside.
package wasmconfig

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/wasmjit-omr/winter/internal/memory"
	"github.com/wasmjit-omr/winter/internal/sandbox"
)

// Config holds host-wide defaults that are not themselves part of any
// decoded module.
type Config struct {
	// MaxSandboxes bounds how many sandboxes an embedder should keep alive
	// concurrently. Zero means unbounded.
	MaxSandboxes int

	// DefaultMaxMemoryPages is used by embedders that need to pick a
	// maximum capacity for a memory descriptor that declared none.
	DefaultMaxMemoryPages memory.NumPages
}

// Load reads configuration from WINTER_-prefixed environment variables and,
// if present, a winter.yaml/winter.json file on the search path. It applies
// MaxSandboxes to internal/sandbox's New ceiling as a side effect, so an
// embedder need only call Load once at startup.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WINTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("winter")
	v.AddConfigPath(".")

	v.SetDefault("max_sandboxes", 0)
	v.SetDefault("default_max_memory_pages", uint64(memory.UnlimitedPages))

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, err
		}
	}

	cfg := Config{
		MaxSandboxes:          v.GetInt("max_sandboxes"),
		DefaultMaxMemoryPages: memory.NumPages(v.GetUint64("default_max_memory_pages")),
	}

	sandbox.SetMaxSandboxes(cfg.MaxSandboxes)
	return cfg, nil
}
