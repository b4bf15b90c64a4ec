package op

// CPython wordcode opcode values. Only the instructions the scanner's
// patterns can reference are listed; the handful of extras are there so
// synthetic test streams can include realistic filler instructions.
var pythonBase = map[string]Code{
	"POP_TOP":          1,
	"NOP":              9,
	"UNARY_NEGATIVE":   11,
	"BINARY_ADD":       23,
	"BINARY_SUBTRACT":  24,
	"RETURN_VALUE":     83,
	"STORE_NAME":       90,
	"FOR_ITER":         93,
	"STORE_ATTR":       95,
	"STORE_GLOBAL":     97,
	"LOAD_CONST":       100,
	"LOAD_NAME":        101,
	"BUILD_TUPLE":      102,
	"BUILD_LIST":       103,
	"BUILD_MAP":        105,
	"LOAD_ATTR":        106,
	"COMPARE_OP":       107,
	"IMPORT_NAME":      108,
	"IMPORT_FROM":      109,
	"JUMP_FORWARD":     110,
	"JUMP_ABSOLUTE":    113,
	"POP_JUMP_IF_TRUE": 115,
	"LOAD_GLOBAL":      116,
	"LOAD_FAST":        124,
	"STORE_FAST":       125,
	"CALL_FUNCTION":    131,
	"MAKE_FUNCTION":    132,
	"CALL_FUNCTION_KW": 141,
	"CALL_FUNCTION_EX": 142,
	"EXTENDED_ARG":     144,
}

// Python36 describes the CPython 3.6 wordcode instruction set. It predates
// the dedicated method-call instructions, so LOAD_METHOD and CALL_METHOD
// resolve through the alias fallback.
func Python36() *Table {
	return NewTable("python3.6", pythonBase)
}

// Python37 describes the CPython 3.7+ wordcode instruction set, which adds
// LOAD_METHOD and CALL_METHOD.
func Python37() *Table {
	codes := make(map[string]Code, len(pythonBase)+2)
	for mnemonic, code := range pythonBase {
		codes[mnemonic] = code
	}
	codes["LOAD_METHOD"] = 160
	codes["CALL_METHOD"] = 161
	return NewTable("python3.7", codes)
}
