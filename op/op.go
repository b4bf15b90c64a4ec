// Package op describes the instruction set of the bytecode being scanned.
//
// The instruction encoding is fixed at two bytes per instruction: a
// single-byte opcode followed by a single-byte operand. A Table maps the
// human-readable mnemonics used in pattern sources to opcode bytes for one
// instruction-set revision, so the same pattern source works across
// revisions that renamed or merged instructions.
package op

import "fmt"

// Code is the single-byte encoding of an instruction.
type Code byte

// UnknownOpcodeError indicates a pattern referenced a mnemonic that exists
// in neither the active table nor the alias fallback. This is always a
// configuration defect, surfaced at pattern-compile time.
type UnknownOpcodeError struct {
	Mnemonic string
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("opcode error: unknown mnemonic %q", e.Mnemonic)
}

// aliases maps mnemonics that newer instruction-set revisions split out of
// an older instruction back onto the instruction they were split from.
// Older revisions encode both forms with the one merged byte, so a pattern
// written against the newer mnemonics still resolves.
var aliases = map[string]string{
	"LOAD_METHOD": "LOAD_ATTR",
	"CALL_METHOD": "CALL_FUNCTION",
}

// Table maps instruction mnemonics to opcode bytes for one instruction-set
// revision. Tables are immutable after construction and safe for
// concurrent use.
type Table struct {
	name  string
	codes map[string]Code
}

// NewTable creates a Table for the named instruction-set revision. The
// codes map is copied, so later caller mutation does not affect the table.
func NewTable(name string, codes map[string]Code) *Table {
	copied := make(map[string]Code, len(codes))
	for mnemonic, code := range codes {
		copied[mnemonic] = code
	}
	return &Table{name: name, codes: copied}
}

// Name returns the name of the instruction-set revision.
func (t *Table) Name() string {
	return t.name
}

// Contains reports whether the mnemonic exists in this table directly,
// without consulting the alias fallback.
func (t *Table) Contains(mnemonic string) bool {
	_, ok := t.codes[mnemonic]
	return ok
}

// Resolve returns the opcode byte for the given mnemonic. Mnemonics absent
// from this revision fall back to their alias, if one exists; otherwise an
// UnknownOpcodeError is returned.
func (t *Table) Resolve(mnemonic string) (Code, error) {
	if code, ok := t.codes[mnemonic]; ok {
		return code, nil
	}
	if alias, ok := aliases[mnemonic]; ok {
		if code, ok := t.codes[alias]; ok {
			return code, nil
		}
	}
	return 0, &UnknownOpcodeError{Mnemonic: mnemonic}
}
