// Package pattern compiles readable byte-stream patterns into matchers.
//
// A pattern source is an extended regular expression over bytes in which
// backtick-quoted instruction mnemonics stand for their opcode byte:
//
//	(?:`EXTENDED_ARG`.)*
//	(?:`LOAD_NAME`|`LOAD_GLOBAL`).
//
// Mnemonics are resolved through an op.Table at compile time and replaced
// with \x{NN} byte literals, so one pattern source works across
// instruction-set revisions. Patterns are compiled in verbose form:
// whitespace and #-comments outside byte literals carry no matching
// meaning, which lets a pattern be laid out to mirror a disassembly
// listing. The dot matches any byte, including line terminators.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudcmds/callscan/op"
)

var (
	mnemonicRegex = regexp.MustCompile("`(\\w+)`")
	commentRegex  = regexp.MustCompile(`#[^\n]*`)
	spaceRegex    = regexp.MustCompile(`\s+`)
)

// Compile resolves every backtick-quoted mnemonic in source against the
// table and compiles the result into a Matcher. Resolution failures abort
// compilation with the underlying op.UnknownOpcodeError.
func Compile(table *op.Table, source string) (*Matcher, error) {
	var resolveErr error
	expanded := mnemonicRegex.ReplaceAllStringFunc(source, func(token string) string {
		mnemonic := token[1 : len(token)-1]
		code, err := table.Resolve(mnemonic)
		if err != nil {
			if resolveErr == nil {
				resolveErr = err
			}
			return token
		}
		// The \x{NN} form is safe in any position, including inside a
		// character class, and survives the verbose-mode stripping below.
		return fmt.Sprintf(`\x{%02x}`, byte(code))
	})
	if resolveErr != nil {
		return nil, resolveErr
	}
	stripped := spaceRegex.ReplaceAllString(commentRegex.ReplaceAllString(expanded, ""), "")
	re, err := regexp.Compile("(?s)" + stripped)
	if err != nil {
		return nil, fmt.Errorf("pattern error: %w", err)
	}
	return &Matcher{re: re, source: stripped}, nil
}

// Matcher is a compiled byte-stream pattern.
//
// The haystack is widened so that every byte occupies exactly one matching
// position regardless of value. Without this, bytes at or above 0x80 would
// be treated as malformed text and matched differently from the pattern's
// byte literals.
type Matcher struct {
	re     *regexp.Regexp
	source string
}

// String returns the expanded pattern text the Matcher was compiled from,
// with mnemonics replaced by byte literals and verbose-form whitespace and
// comments removed. Two Matchers match identically iff their expanded
// texts are identical.
func (m *Matcher) String() string {
	return m.source
}

// Match reports whether the pattern matches anywhere in data.
func (m *Matcher) Match(data []byte) bool {
	return m.re.MatchString(widen(data))
}

// Find returns the first match as a slice of capture groups, with the full
// match at index 0, or nil if there is no match.
func (m *Matcher) Find(data []byte) [][]byte {
	groups := m.re.FindStringSubmatch(widen(data))
	if groups == nil {
		return nil
	}
	return narrowAll(groups)
}

// FindAll returns every non-overlapping match in data, left to right, each
// as a slice of capture groups with the full match at index 0.
func (m *Matcher) FindAll(data []byte) [][][]byte {
	var out [][][]byte
	for _, groups := range m.re.FindAllStringSubmatch(widen(data), -1) {
		out = append(out, narrowAll(groups))
	}
	return out
}

// widen maps each byte of data to a single rune so the regexp engine sees
// one position per byte.
func widen(data []byte) string {
	var b strings.Builder
	b.Grow(len(data) + len(data)/2)
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// narrow undoes widen for one captured group.
func narrow(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, byte(r))
	}
	return out
}

func narrowAll(groups []string) [][]byte {
	out := make([][]byte, len(groups))
	for i, g := range groups {
		out[i] = narrow(g)
	}
	return out
}
