// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gitlab.com/fisherprime/orgchart"
	"gitlab.com/fisherprime/orgchart/decode"
)

const (
	canonicalJSON    = `{"Jane Mayer":["Baraka Tumuti","Sarah Lee","David Heinsburg"],"Baraka Tumuti":["Abida Begum"],"Sarah Lee":["David Gibbly","Kelsey Hamming"],"David Heinsburg":[],"Abida Begum":["Dave Bunt","James Ray"],"David Gibbly":[],"Kelsey Hamming":[],"Dave Bunt":[],"James Ray":[]}`
	canonicalCompact = "Jane Mayer,Baraka Tumuti,Abida Begum,Dave Bunt),James Ray))),Sarah Lee,David Gibbly),Kelsey Hamming)),David Heinsburg))"
	diamondJSON      = `{"a":["b","c"],"b":["d"],"c":["d"],"d":[]}`
)

func testFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/org.json", []byte(canonicalJSON), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/diamond.json", []byte(diamondJSON), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/cyclic.yml", []byte("a: [b]\nb: [a]\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/org.txt", []byte(canonicalCompact), 0o644))

	return fs
}

func run(fs afero.Fs, stdin string, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	err = execute(context.Background(), fs, strings.NewReader(stdin), &out, &errOut, args)

	return out.String(), errOut.String(), err
}

func lines(names ...string) string { return strings.Join(names, "\n") + "\n" }

func TestCommands_text(t *testing.T) {
	fs := testFs(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "flatten",
			args: []string{"flatten", "Jane Mayer", "-i", "/org.json"},
			want: lines("Jane Mayer", "Baraka Tumuti", "Abida Begum", "Dave Bunt", "James Ray",
				"Sarah Lee", "David Gibbly", "Kelsey Hamming", "David Heinsburg"),
		},
		{
			name: "flatten several",
			args: []string{"flatten", "Sarah Lee", "Abida Begum", "-i", "/org.json", "--workers", "2"},
			want: lines("Sarah Lee", "David Gibbly", "Kelsey Hamming", "", "Abida Begum", "Dave Bunt", "James Ray"),
		},
		{
			name: "flatten compact by extension",
			args: []string{"flatten", "Abida Begum", "-i", "/org.txt"},
			want: lines("Abida Begum", "Dave Bunt", "James Ray"),
		},
		{
			name: "flatten repeated",
			args: []string{"flatten", "a", "-i", "/diamond.json"},
			want: lines("a", "b", "d", "c", "d"),
		},
		{
			name: "flatten unique",
			args: []string{"flatten", "a", "-i", "/diamond.json", "--unique"},
			want: lines("a", "b", "d", "c"),
		},
		{
			name: "subordinates",
			args: []string{"subordinates", "Sarah Lee", "-i", "/org.json"},
			want: lines("David Gibbly", "Kelsey Hamming"),
		},
		{
			name: "levels",
			args: []string{"levels", "Jane Mayer", "-i", "/org.json"},
			want: lines(
				"0: Jane Mayer",
				"1: Baraka Tumuti, Sarah Lee, David Heinsburg",
				"2: Abida Begum, David Gibbly, Kelsey Hamming",
				"3: Dave Bunt, James Ray",
			),
		},
		{
			name: "leaves",
			args: []string{"leaves", "Jane Mayer", "-i", "/org.json"},
			want: lines("Dave Bunt", "James Ray", "David Gibbly", "Kelsey Hamming", "David Heinsburg"),
		},
		{
			name: "tree",
			args: []string{"tree", "Baraka Tumuti", "-i", "/org.json"},
			want: lines("Baraka Tumuti", "  Abida Begum", "    Dave Bunt", "    James Ray"),
		},
		{
			name: "tree unique",
			args: []string{"tree", "a", "-i", "/diamond.json", "--unique"},
			want: lines("a", "  b", "    d", "  c", "    d"),
		},
		{
			name: "managers",
			args: []string{"managers", "d", "-i", "/diamond.json"},
			want: lines("b", "c"),
		},
		{
			name: "roots",
			args: []string{"roots", "-i", "/org.json"},
			want: lines("Jane Mayer"),
		},
		{
			name: "serialize",
			args: []string{"serialize", "Jane Mayer", "-i", "/org.json"},
			want: lines(canonicalCompact),
		},
		{
			name: "serialize custom markers",
			args: []string{"serialize", "Abida Begum", "-i", "/org.json", "--splitter", ";", "--end-marker", "]"},
			want: lines("Abida Begum;Dave Bunt];James Ray]]"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := run(fs, "", tt.args...)
			require.NoError(t, err, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestCommands_stdin(t *testing.T) {
	fs := afero.NewMemMapFs()

	stdout, stderr, err := run(fs, canonicalJSON, "flatten", "Abida Begum")
	require.NoError(t, err, stderr)
	assert.Equal(t, lines("Abida Begum", "Dave Bunt", "James Ray"), stdout)

	stdout, stderr, err = run(fs, canonicalCompact, "serialize", "Jane Mayer", "-i", "-", "-f", "compact")
	require.NoError(t, err, stderr)
	assert.Equal(t, lines(canonicalCompact), stdout)

	stdout, stderr, err = run(fs, "a;b]]", "flatten", "a", "-f", "compact", "--splitter", ";", "--end-marker", "]")
	require.NoError(t, err, stderr)
	assert.Equal(t, lines("a", "b"), stdout)
}

func TestCommands_structuredOutput(t *testing.T) {
	fs := testFs(t)

	t.Run("json levels", func(t *testing.T) {
		stdout, stderr, err := run(fs, "", "levels", "Baraka Tumuti", "-i", "/org.json", "-o", "json")
		require.NoError(t, err, stderr)
		assert.JSONEq(t, `[["Baraka Tumuti"],["Abida Begum"],["Dave Bunt","James Ray"]]`, stdout)
	})

	t.Run("json flatten", func(t *testing.T) {
		stdout, stderr, err := run(fs, "", "flatten", "Abida Begum", "-i", "/org.json", "-o", "json")
		require.NoError(t, err, stderr)
		assert.JSONEq(t, `[{"start":"Abida Begum","names":["Abida Begum","Dave Bunt","James Ray"]}]`, stdout)
	})

	t.Run("yaml serialize", func(t *testing.T) {
		stdout, stderr, err := run(fs, "", "serialize", "Abida Begum", "-i", "/org.json", "-o", "yaml")
		require.NoError(t, err, stderr)

		var got compactForm
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, compactForm{Start: "Abida Begum", Compact: "Abida Begum,Dave Bunt),James Ray))"}, got)
	})

	t.Run("yaml tree", func(t *testing.T) {
		stdout, stderr, err := run(fs, "", "tree", "Sarah Lee", "-i", "/org.json", "-o", "yaml")
		require.NoError(t, err, stderr)

		var got treeLines
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, treeLines{{"Sarah Lee", 0}, {"David Gibbly", 1}, {"Kelsey Hamming", 1}}, got)
	})
}

func TestCommands_configFile(t *testing.T) {
	fs := testFs(t)
	require.NoError(t, afero.WriteFile(fs, "/orgchart.yaml", []byte("input: /org.json\noutput: json\nunique: true\n"), 0o644))

	stdout, stderr, err := run(fs, "", "roots", "--config", "/orgchart.yaml")
	require.NoError(t, err, stderr)
	assert.JSONEq(t, `["Jane Mayer"]`, stdout)

	stdout, stderr, err = run(fs, "", "roots", "--config", "/orgchart.yaml", "-o", "text")
	require.NoError(t, err, stderr)
	assert.Equal(t, lines("Jane Mayer"), stdout)

	stdout, stderr, err = run(fs, "", "flatten", "a", "--config", "/orgchart.yaml", "-i", "/diamond.json", "-o", "text")
	require.NoError(t, err, stderr)
	assert.Equal(t, lines("a", "b", "d", "c"), stdout)

	_, _, err = run(fs, "", "roots", "--config", "/missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, afero.WriteFile(fs, "/broken.yaml", []byte("workers: [1"), 0o644))
	_, _, err = run(fs, "", "roots", "--config", "/broken.yaml")
	assert.Error(t, err)
}

func TestCommands_errors(t *testing.T) {
	fs := testFs(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "unknown employee", args: []string{"flatten", "Unknown Person", "-i", "/org.json"}, wantErr: orgchart.ErrNotFound},
		{name: "one of several unknown", args: []string{"flatten", "Sarah Lee", "Unknown Person", "-i", "/org.json"}, wantErr: orgchart.ErrNotFound},
		{name: "cycle", args: []string{"flatten", "a", "-i", "/cyclic.yml"}, wantErr: orgchart.ErrCyclic},
		{name: "cycle by level", args: []string{"levels", "a", "-i", "/cyclic.yml"}, wantErr: orgchart.ErrCyclic},
		{name: "unknown manager", args: []string{"managers", "Unknown Person", "-i", "/org.json"}, wantErr: orgchart.ErrNotFound},
		{name: "reserved rune", args: []string{"serialize", "Abida Begum", "-i", "/org.json", "--splitter", " "}, wantErr: orgchart.ErrReservedRune},
		{name: "missing input", args: []string{"roots", "-i", "/missing.json"}, wantErr: os.ErrNotExist},
		{name: "unknown input format", args: []string{"roots", "-i", "/org.json", "-f", "toml"}, wantErr: decode.ErrUnknownFormat},
		{name: "wrong input format", args: []string{"roots", "-i", "/org.json", "-f", "compact"}, wantErr: decode.ErrExcessiveValues},
		{name: "invalid output", args: []string{"roots", "-i", "/org.json", "-o", "xml"}, wantErr: ErrInvalidOutput},
		{name: "invalid workers", args: []string{"flatten", "a", "-i", "/diamond.json", "--workers", "0"}, wantErr: ErrInvalidWorkers},
		{name: "invalid marker", args: []string{"serialize", "a", "-i", "/diamond.json", "--end-marker", "]]"}, wantErr: ErrInvalidMarker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := run(fs, "", tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, `"level":"error"`)
		})
	}
}

func TestCommands_invalidHierarchy(t *testing.T) {
	_, stderr, err := run(afero.NewMemMapFs(), `{"Jane Mayer":"Sarah Lee"}`, "roots")
	assert.ErrorIs(t, err, orgchart.ErrInvalidFormat)
	assert.Contains(t, stderr, "Jane Mayer")
}

func TestCommands_debug(t *testing.T) {
	_, stderr, err := run(testFs(t), "", "roots", "-i", "/org.json", "--debug")
	require.NoError(t, err)

	var sawLoad bool
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		assert.Equal(t, "debug", entry["level"])

		if entry["msg"] == "loading hierarchy" {
			sawLoad = true
			assert.Equal(t, "/org.json", entry["input"])
		}
	}
	assert.True(t, sawLoad, stderr)
}
