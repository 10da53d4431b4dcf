// Package wasmdump renders decoded modules and instances as human-readable
// tables for debugging, the successor to the original runtime's main.cpp
// harness. It never mutates linker state.
package wasmdump

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/wasmjit-omr/winter/internal/linker"
	"github.com/wasmjit-omr/winter/internal/wasmmodule"
)

// Module renders a decoded module's imports, exports, functions and
// memories as a table.
func Module(m *wasmmodule.DecodedModule) string {
	t := table.NewWriter()
	t.SetTitle("decoded module")

	t.AppendHeader(table.Row{"section", "index", "detail"})
	for i, imp := range m.Imports {
		t.AppendRow(table.Row{"import", i, fmt.Sprintf("%s.%s (%s) -> slot %d", imp.Module, imp.Name, imp.Kind, imp.Index)})
	}
	for i, exp := range m.Exports {
		t.AppendRow(table.Row{"export", i, fmt.Sprintf("%s (%s) <- slot %d", exp.Name, exp.Kind, exp.Index)})
	}
	for i, mem := range m.Memories {
		t.AppendRow(table.Row{"memory", i, fmt.Sprintf("shared=%t initial=%d max=%d import=%t", mem.Shared, mem.InitialPages, mem.MaxPages, mem.IsImport)})
	}
	for i, fn := range m.Funcs {
		t.AppendRow(table.Row{"func", i, fmt.Sprintf("name=%q import=%t params=%d results=%d", fn.DebugName, fn.IsImport, len(fn.Sig.Params), len(fn.Sig.Results))})
	}

	return t.Render()
}

// Instance renders a fully linked instance's exports and tables.
func Instance(inst *linker.Instance) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("instance %s", inst.Sandbox().ID()))

	t.AppendHeader(table.Row{"section", "index", "detail"})
	for i, exp := range inst.Exports() {
		t.AppendRow(table.Row{"export", i, fmt.Sprintf("%s (%s) <- slot %d", exp.Name, exp.Kind, exp.Index)})
	}
	for i, fn := range inst.Funcs() {
		t.AppendRow(table.Row{"func", i, fmt.Sprintf("sig=%p", fn.Unlinked().Signature())})
	}
	for i, mem := range inst.Memories() {
		t.AppendRow(table.Row{"memory", i, fmt.Sprintf("shared=%t size=%d/%d pages", mem.IsShared(), mem.SizePages(), mem.MaxCapacityPages())})
	}

	return t.Render()
}
