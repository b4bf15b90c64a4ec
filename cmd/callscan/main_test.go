package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudcmds/callscan/bytecode"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestFormatArgs(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want string
	}{
		{"empty", nil, ""},
		{"numbers", []any{int64(1), 2.5}, "1, 2.5"},
		{"string", []any{"x"}, `"x"`},
		{"none and bools", []any{nil, true, false}, "None, True, False"},
		{"tuple", []any{[]any{int64(1), "two"}}, `(1, "two")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, formatArgs(tt.args))
		})
	}
}

func TestLookupTable(t *testing.T) {
	table, err := lookupTable("python3.6")
	require.Nil(t, err)
	require.Equal(t, "python3.6", table.Name())

	table, err = lookupTable("python3.7")
	require.Nil(t, err)
	require.Equal(t, "python3.7", table.Name())

	_, err = lookupTable("python2.7")
	require.NotNil(t, err)
}

func TestRunScan(t *testing.T) {
	color.NoColor = true

	child := bytecode.NewCode(bytecode.CodeParams{
		ID:        "inner-id",
		Name:      "inner",
		Symbols:   []string{"load_resource"},
		Constants: []any{"data.bin"},
		Instructions: []byte{
			101, 0, // LOAD_NAME load_resource
			100, 0, // LOAD_CONST "data.bin"
			131, 1, // CALL_FUNCTION 1
		},
	})
	root := bytecode.NewCode(bytecode.CodeParams{
		ID:           "root-id",
		Name:         "module",
		Constants:    []any{child},
		Instructions: []byte{100, 0, 83, 0},
	})
	data, err := bytecode.Marshal(root)
	require.Nil(t, err)

	path := filepath.Join(t.TempDir(), "unit.json")
	require.Nil(t, os.WriteFile(path, data, 0o644))

	tableName = "python3.7"
	failFast = true
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.Nil(t, runScan(cmd, []string{path}))
	require.Contains(t, out.String(), "module:")
	require.Contains(t, out.String(), "no constant-argument calls")
	require.Contains(t, out.String(), "inner:")
	require.Contains(t, out.String(), `load_resource("data.bin")`)
}

func TestRunScanMissingFile(t *testing.T) {
	tableName = "python3.7"
	require.NotNil(t, runScan(&cobra.Command{}, []string{"/does/not/exist.json"}))
}
