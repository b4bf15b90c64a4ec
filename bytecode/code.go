package bytecode

import "github.com/gofrs/uuid"

// Code represents one compiled code unit (module body, function body,
// comprehension body, etc.). It is immutable after creation and safe for
// concurrent use.
type Code struct {
	id           string
	name         string
	filename     string
	instructions []byte
	symbols      []string
	constants    []any
}

// CodeParams contains parameters for creating a new Code.
type CodeParams struct {
	ID           string // Generated if empty
	Name         string
	Filename     string
	Instructions []byte
	Symbols      []string
	Constants    []any
}

// NewCode creates a new immutable Code from the given parameters. Input
// slices are copied. A unit created without an ID is assigned a random one.
func NewCode(params CodeParams) *Code {
	id := params.ID
	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}
	return &Code{
		id:           id,
		name:         params.Name,
		filename:     params.Filename,
		instructions: copyBytes(params.Instructions),
		symbols:      copyStrings(params.Symbols),
		constants:    copyAny(params.Constants),
	}
}

// ID returns the unique identifier for this code unit.
func (c *Code) ID() string {
	return c.id
}

// Name returns the name of this code unit.
func (c *Code) Name() string {
	return c.name
}

// Filename returns the source filename, if known.
func (c *Code) Filename() string {
	return c.filename
}

// Instructions returns a copy of the raw instruction stream.
func (c *Code) Instructions() []byte {
	return copyBytes(c.instructions)
}

// InstructionCount returns the number of instructions. Each instruction is
// an opcode byte and an operand byte.
func (c *Code) InstructionCount() int {
	return len(c.instructions) / 2
}

// SymbolCount returns the number of entries in the symbol table.
func (c *Code) SymbolCount() int {
	return len(c.symbols)
}

// SymbolAt returns the symbol name at the given index.
func (c *Code) SymbolAt(index int) string {
	return c.symbols[index]
}

// ConstantCount returns the number of entries in the constant table.
func (c *Code) ConstantCount() int {
	return len(c.constants)
}

// ConstantAt returns the constant at the given index. Nested code units
// appear here as *Code values.
func (c *Code) ConstantAt(index int) any {
	return c.constants[index]
}

// Label returns a human-readable identifier for error reporting: the unit
// name if set, otherwise the ID.
func (c *Code) Label() string {
	if c.name != "" {
		return c.name
	}
	return c.id
}
