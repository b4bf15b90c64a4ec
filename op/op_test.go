package op

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	table := Python37()
	tests := []struct {
		mnemonic string
		code     Code
	}{
		{"LOAD_CONST", 100},
		{"LOAD_NAME", 101},
		{"LOAD_ATTR", 106},
		{"LOAD_GLOBAL", 116},
		{"LOAD_FAST", 124},
		{"CALL_FUNCTION", 131},
		{"EXTENDED_ARG", 144},
		{"LOAD_METHOD", 160},
		{"CALL_METHOD", 161},
	}
	for _, tt := range tests {
		t.Run(tt.mnemonic, func(t *testing.T) {
			code, err := table.Resolve(tt.mnemonic)
			require.Nil(t, err)
			require.Equal(t, tt.code, code)
		})
	}
}

func TestResolveAliasFallback(t *testing.T) {
	table := Python36()
	require.False(t, table.Contains("LOAD_METHOD"))
	require.False(t, table.Contains("CALL_METHOD"))

	code, err := table.Resolve("LOAD_METHOD")
	require.Nil(t, err)
	require.Equal(t, Code(106), code) // LOAD_ATTR

	code, err = table.Resolve("CALL_METHOD")
	require.Nil(t, err)
	require.Equal(t, Code(131), code) // CALL_FUNCTION
}

func TestResolveUnknown(t *testing.T) {
	table := Python37()
	_, err := table.Resolve("LOAD_BOGUS")
	require.NotNil(t, err)
	require.Equal(t, `opcode error: unknown mnemonic "LOAD_BOGUS"`, err.Error())

	var unknown *UnknownOpcodeError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "LOAD_BOGUS", unknown.Mnemonic)
}

func TestNewTableCopiesCodes(t *testing.T) {
	codes := map[string]Code{"LOAD_CONST": 100}
	table := NewTable("custom", codes)
	codes["LOAD_CONST"] = 7

	code, err := table.Resolve("LOAD_CONST")
	require.Nil(t, err)
	require.Equal(t, Code(100), code)
	require.Equal(t, "custom", table.Name())
}

func TestRevisionNames(t *testing.T) {
	require.Equal(t, "python3.6", Python36().Name())
	require.Equal(t, "python3.7", Python37().Name())
}
