package sandbox

// TypeInterner canonicalizes function signatures within a single Sandbox so
// that signature equality becomes pointer identity. It only ever grows:
// entries are never removed and live as long as the owning sandbox.
//
// Not safe for concurrent use. Callers must serialize interning against any
// concurrent identity comparison, matching winter::TypeTable in the original
// runtime this core is modeled on.
type TypeInterner struct {
	sigs []*FuncSig
}

// Intern deduplicates sig, returning the canonical, comparable-by-identity
// representative for its (Results, Params) pair. A linear scan is used,
// matching TypeTable::sig; a production interner could substitute a
// content-hash index without changing the observable contract.
func (t *TypeInterner) Intern(sig FuncSig) *FuncSig {
	for _, existing := range t.sigs {
		if existing.equal(sig) {
			return existing
		}
	}

	canonical := &FuncSig{
		Results: append([]ValueType(nil), sig.Results...),
		Params:  append([]ValueType(nil), sig.Params...),
	}
	t.sigs = append(t.sigs, canonical)
	return canonical
}

// Len reports the number of distinct signatures interned so far. Used only
// for diagnostics.
func (t *TypeInterner) Len() int {
	return len(t.sigs)
}
