package sandbox

import "github.com/wasmjit-omr/winter/internal/wasmassert"

// ValueKind is the primitive part of a WebAssembly value type. It is not
// dynamically controlled by WASM code, so it can be represented as a plain
// tag. The numeric values match the WASM binary format's valtype encoding.
type ValueKind uint8

const (
	KindI32     ValueKind = 0x7f
	KindI64     ValueKind = 0x7e
	KindF32     ValueKind = 0x7d
	KindF64     ValueKind = 0x7c
	KindFuncRef ValueKind = 0x70
)

func (k ValueKind) String() string {
	switch k {
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindFuncRef:
		return "funcref"
	default:
		return "unknown"
	}
}

// ValueType is a tagged WebAssembly value type: a primitive Kind plus, for
// KindFuncRef, an optional reference to an interned FuncSig (nil means the
// untyped funcref). Sig must only ever be populated with a pointer returned
// from TypeInterner.Intern; comparing Sig by identity is the whole point.
type ValueType struct {
	Kind ValueKind
	Sig  *FuncSig
}

// I32, I64, F32 and F64 construct the non-reference primitive types.
func I32() ValueType { return ValueType{Kind: KindI32} }
func I64() ValueType { return ValueType{Kind: KindI64} }
func F32() ValueType { return ValueType{Kind: KindF32} }
func F64() ValueType { return ValueType{Kind: KindF64} }

// FuncRef constructs a function reference type. sig may be nil for an
// untyped funcref.
func FuncRef(sig *FuncSig) ValueType {
	return ValueType{Kind: KindFuncRef, Sig: sig}
}

// Equal reports whether two value types are identical: same primitive tag
// and, for funcref, identical signature references.
func (t ValueType) Equal(other ValueType) bool {
	return t.Kind == other.Kind && t.Sig == other.Sig
}

// IsAssignableTo reports whether a value of type src can be assigned to a
// location of type dest.
func IsAssignableTo(dest, src ValueType) bool {
	switch dest.Kind {
	case KindI32, KindI64, KindF32, KindF64:
		return src.Kind == dest.Kind
	case KindFuncRef:
		if src.Kind != KindFuncRef {
			return false
		}
		return dest.Sig == nil || src.Sig == dest.Sig
	default:
		wasmassert.Require(false, "invalid ValueKind %#x", uint8(dest.Kind))
		return false
	}
}

// FuncSig is the signature of a WebAssembly function: an ordered sequence of
// result types followed by an ordered sequence of parameter types.
//
// After it has been returned from TypeInterner.Intern, a *FuncSig is the
// canonical representative of its (Results, Params) pair within that
// sandbox: two signatures are semantically equal iff their interned
// pointers are equal.
type FuncSig struct {
	Results []ValueType
	Params  []ValueType
}

func (s FuncSig) equal(other FuncSig) bool {
	return valueTypesEqual(s.Results, other.Results) && valueTypesEqual(s.Params, other.Params)
}

func valueTypesEqual(a, b []ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
