package scan

import (
	"github.com/cloudcmds/callscan/op"
	"github.com/cloudcmds/callscan/pattern"
)

// Operand reconstructs the integer operand encoded by one extension chain:
// zero or more EXTENDED_ARG instructions followed by a single terminal
// instruction. The operand bytes (every second byte of the chain) combine
// big-endian, the terminal instruction's own operand byte supplying the
// low-order byte.
func Operand(chain []byte) int {
	n := 0
	for i := 1; i < len(chain); i += 2 {
		n = n<<8 | int(chain[i])
	}
	return n
}

// chainSource isolates one extension chain: any number of EXTENDED_ARG
// instruction pairs followed by exactly one other instruction pair.
const chainSource = "((?:`EXTENDED_ARG`.)* [^`EXTENDED_ARG`].)"

// Decoder splits byte spans of back-to-back extension chains into their
// decoded integer operands.
type Decoder struct {
	chains *pattern.Matcher
}

// NewDecoder compiles the extension-chain pattern for the given
// instruction set.
func NewDecoder(table *op.Table) (*Decoder, error) {
	chains, err := pattern.Compile(table, chainSource)
	if err != nil {
		return nil, err
	}
	return &Decoder{chains: chains}, nil
}

// Operands decodes each independent extension chain in raw, preserving
// stream order. Stream order is program order: outer-to-inner for
// attribute chains, positional order for arguments.
func (d *Decoder) Operands(raw []byte) []int {
	matches := d.chains.FindAll(raw)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, Operand(m[1]))
	}
	return out
}
