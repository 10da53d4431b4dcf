package linker

import (
	"github.com/wasmjit-omr/winter/internal/memory"
	"github.com/wasmjit-omr/winter/internal/wasmmodule"
)

// ImportModule is something that can be searched for exports matching an
// import descriptor: either an already-instantiated Instance, or a
// composite of several such sources.
type ImportModule interface {
	// FindFunc finds the function satisfying imp, or returns (nil, nil) if
	// this module has no export of that name. A non-nil error means an
	// export of that name exists but cannot satisfy the import (wrong
	// kind).
	FindFunc(imp wasmmodule.ImportDescriptor) (*LinkedFunc, error)
	// FindMemory is the memory analogue of FindFunc.
	FindMemory(imp wasmmodule.ImportDescriptor) (*memory.Memory, error)
}

// CompositeImportModule searches a list of modules in order and returns the
// first hit, matching ImportMultiModule in the system this core is modeled
// on.
type CompositeImportModule struct {
	Modules []ImportModule
}

func (c *CompositeImportModule) FindFunc(imp wasmmodule.ImportDescriptor) (*LinkedFunc, error) {
	for _, m := range c.Modules {
		f, err := m.FindFunc(imp)
		if err != nil {
			return nil, err
		}
		if f != nil {
			return f, nil
		}
	}
	return nil, nil
}

func (c *CompositeImportModule) FindMemory(imp wasmmodule.ImportDescriptor) (*memory.Memory, error) {
	for _, m := range c.Modules {
		mem, err := m.FindMemory(imp)
		if err != nil {
			return nil, err
		}
		if mem != nil {
			return mem, nil
		}
	}
	return nil, nil
}

// Environment is the set of named modules presented to a module at link
// time. Lookups are keyed by (module name, export name, kind); adding a
// module under a name already in use overwrites the previous entry, matching
// ImportEnvironment::add_module in the system this core is modeled on. To
// combine several modules under one name, use CompositeImportModule.
type Environment struct {
	modules map[string]ImportModule
}

// NewEnvironment creates an empty import environment.
func NewEnvironment() *Environment {
	return &Environment{modules: make(map[string]ImportModule)}
}

// AddModule registers module under name, visible to imports whose Module
// field equals name.
func (e *Environment) AddModule(name string, module ImportModule) {
	e.modules[name] = module
}

// FindModule returns the module registered under imp.Module, or nil.
func (e *Environment) FindModule(imp wasmmodule.ImportDescriptor) ImportModule {
	return e.modules[imp.Module]
}

func (e *Environment) FindFunc(imp wasmmodule.ImportDescriptor) (*LinkedFunc, error) {
	m := e.FindModule(imp)
	if m == nil {
		return nil, nil
	}
	return m.FindFunc(imp)
}

func (e *Environment) FindMemory(imp wasmmodule.ImportDescriptor) (*memory.Memory, error) {
	m := e.FindModule(imp)
	if m == nil {
		return nil, nil
	}
	return m.FindMemory(imp)
}
