package scan

import (
	"fmt"
	"strings"

	"github.com/cloudcmds/callscan/bytecode"
	"github.com/cloudcmds/callscan/op"
	"github.com/cloudcmds/callscan/pattern"
)

// Call is one recognized call site: the dotted name of the callable and
// the constant value of each positional argument, in order.
type Call struct {
	Function string
	Args     []any
}

// MalformedIndexError indicates an instruction operand that points outside
// the unit's symbol or constant table. This is a defect in the scanned
// unit, not in the pattern; it fails that one unit's scan.
type MalformedIndexError struct {
	Unit  string
	Table string // "symbols" or "constants"
	Index int
	Size  int
}

func (e *MalformedIndexError) Error() string {
	return fmt.Sprintf("scan error: unit %q references %s[%d] but the table holds %d entries",
		e.Unit, e.Table, e.Index, e.Size)
}

// callSource recognizes `name.attr1.attr2(const, ...)` call sites. The
// four groups are contiguous, so unrelated instructions between them rule
// a match out. Each group carries its own extension chains, since each is
// a separate operand.
const callSource = `
	# Load the callable's root symbol, in any of its scope forms. Units
	# with more than 256 symbols extend the reference.
	((?:` + "`EXTENDED_ARG`" + `.)*
	 (?:` + "`LOAD_NAME`|`LOAD_GLOBAL`|`LOAD_FAST`" + `).)

	# For foo.bar.whizz(), the group above holds foo and this group holds
	# bar.whizz.
	((?:(?:` + "`EXTENDED_ARG`" + `.)*
	 (?:` + "`LOAD_METHOD`|`LOAD_ATTR`" + `).)*)

	# Push the arguments, which must all be constants.
	((?:(?:` + "`EXTENDED_ARG`" + `.)*
	 ` + "`LOAD_CONST`" + `.)*)

	# Invoke. The operand is the argument count actually consumed.
	((?:` + "`EXTENDED_ARG`" + `.)*
	 (?:` + "`CALL_FUNCTION`|`CALL_METHOD`" + `).)
`

// Scanner recognizes constant-argument call sites for one instruction-set
// revision. Construct once and reuse; a Scanner is immutable and safe for
// concurrent use.
type Scanner struct {
	calls   *pattern.Matcher
	decoder *Decoder
}

// New compiles the call-site pattern against the given instruction set.
// Unknown mnemonics surface here as op.UnknownOpcodeError.
func New(table *op.Table) (*Scanner, error) {
	calls, err := pattern.Compile(table, callSource)
	if err != nil {
		return nil, err
	}
	decoder, err := NewDecoder(table)
	if err != nil {
		return nil, err
	}
	return &Scanner{calls: calls, decoder: decoder}, nil
}

// Scan reports every constant-argument call site in code, in instruction
// stream order. An out-of-range symbol or constant reference fails the
// scan with a MalformedIndexError.
func (s *Scanner) Scan(code *bytecode.Code) ([]Call, error) {
	var out []Call
	for _, m := range s.calls.FindAll(code.Instructions()) {
		root, attrs, consts, invoke := m[1], m[2], m[3], m[4]

		rootName, err := symbolAt(code, Operand(root))
		if err != nil {
			return nil, err
		}
		parts := []string{rootName}
		for _, index := range s.decoder.Operands(attrs) {
			name, err := symbolAt(code, index)
			if err != nil {
				return nil, err
			}
			parts = append(parts, name)
		}

		var args []any
		for _, index := range s.decoder.Operands(consts) {
			value, err := constantAt(code, index)
			if err != nil {
				return nil, err
			}
			args = append(args, value)
		}

		if Operand(invoke) != len(args) {
			// The call used variable, starred, or keyword arguments.
			// Skip the site rather than report it partially.
			continue
		}

		out = append(out, Call{Function: strings.Join(parts, "."), Args: args})
	}
	return out, nil
}

func symbolAt(code *bytecode.Code, index int) (string, error) {
	if index < 0 || index >= code.SymbolCount() {
		return "", &MalformedIndexError{
			Unit:  code.Label(),
			Table: "symbols",
			Index: index,
			Size:  code.SymbolCount(),
		}
	}
	return code.SymbolAt(index), nil
}

func constantAt(code *bytecode.Code, index int) (any, error) {
	if index < 0 || index >= code.ConstantCount() {
		return nil, &MalformedIndexError{
			Unit:  code.Label(),
			Table: "constants",
			Index: index,
			Size:  code.ConstantCount(),
		}
	}
	return code.ConstantAt(index), nil
}
