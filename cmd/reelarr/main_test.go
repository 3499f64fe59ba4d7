package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	root := newRootCommand()

	for _, path := range [][]string{
		{"serve"},
		{"import", "nominations"},
		{"import", "collection"},
		{"verify"},
		{"review", "confirm"},
		{"review", "correct"},
		{"collection", "queue"},
		{"collection", "correct"},
		{"collection", "approve"},
		{"collection", "remove"},
		{"sync", "best-picture"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestRequiredFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"collection import without user", []string{"import", "collection", "export.csv"}},
		{"queue without user", []string{"collection", "queue"}},
		{"confirm without reviewer", []string{"review", "confirm", "1"}},
		{"best picture without year", []string{"sync", "best-picture", "--user", "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCommand()
			root.SetArgs(tt.args)
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})

			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "required flag")
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, arg := range []string{"0", "-1", "abc", ""} {
		_, err := parseID(arg)
		assert.Error(t, err, arg)
	}
}

func TestParseExternalID(t *testing.T) {
	id, err := parseExternalID("872585")
	require.NoError(t, err)
	assert.Equal(t, int64(872585), id)

	for _, arg := range []string{"0", "-5", "tt1234"} {
		_, err := parseExternalID(arg)
		assert.Error(t, err, arg)
	}
}
