// Package sandboxtest provides test doubles for linking against without a
// real decoded module, mirroring the original runtime's MockImportModule.
package sandboxtest

import (
	"github.com/wasmjit-omr/winter/internal/linker"
	"github.com/wasmjit-omr/winter/internal/memory"
	"github.com/wasmjit-omr/winter/internal/wasmmodule"
)

// MockImportModule resolves a fixed set of named funcs and memories,
// ignoring the import's declared module name.
type MockImportModule struct {
	funcs    map[string]*linker.LinkedFunc
	memories map[string]*memory.Memory
}

var _ linker.ImportModule = (*MockImportModule)(nil)

// Empty returns a mock module with no exports.
func Empty() *MockImportModule {
	return &MockImportModule{}
}

// ForFunc returns a mock module exporting a single named function.
func ForFunc(name string, fn *linker.LinkedFunc) *MockImportModule {
	return &MockImportModule{funcs: map[string]*linker.LinkedFunc{name: fn}}
}

// ForMemory returns a mock module exporting a single named memory.
func ForMemory(name string, mem *memory.Memory) *MockImportModule {
	return &MockImportModule{memories: map[string]*memory.Memory{name: mem}}
}

// NamedFunc returns the function registered under name, for assertions
// against the same object the linker resolved.
func (m *MockImportModule) NamedFunc(name string) *linker.LinkedFunc {
	return m.funcs[name]
}

// NamedMemory returns the memory registered under name, for assertions
// against the same object the linker resolved.
func (m *MockImportModule) NamedMemory(name string) *memory.Memory {
	return m.memories[name]
}

func (m *MockImportModule) FindFunc(imp wasmmodule.ImportDescriptor) (*linker.LinkedFunc, error) {
	return m.funcs[imp.Name], nil
}

func (m *MockImportModule) FindMemory(imp wasmmodule.ImportDescriptor) (*memory.Memory, error) {
	return m.memories[imp.Name], nil
}
