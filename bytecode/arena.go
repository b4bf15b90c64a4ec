package bytecode

// Handle is a stable integer identity for one Code unit within an Arena.
type Handle int

// Arena assigns integer handles to Code units by object identity. The same
// unit always gets the same handle; two structurally identical but
// distinct units get distinct handles. Not safe for concurrent use.
type Arena struct {
	handles map[*Code]Handle
	units   []*Code
}

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{handles: make(map[*Code]Handle)}
}

// Intern returns the handle for code, assigning the next free handle on
// first sight.
func (a *Arena) Intern(code *Code) Handle {
	if h, ok := a.handles[code]; ok {
		return h
	}
	h := Handle(len(a.units))
	a.handles[code] = h
	a.units = append(a.units, code)
	return h
}

// Lookup returns the handle for code, if it has been interned.
func (a *Arena) Lookup(code *Code) (Handle, bool) {
	h, ok := a.handles[code]
	return h, ok
}

// At returns the unit with the given handle, or nil if the handle was
// never assigned.
func (a *Arena) At(h Handle) *Code {
	if h < 0 || int(h) >= len(a.units) {
		return nil
	}
	return a.units[h]
}

// Len returns the number of interned units.
func (a *Arena) Len() int {
	return len(a.units)
}
