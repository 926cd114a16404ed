// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<html><head><script>
var cvars = [
{name: "stat fps", help: "Displays frame rate", type: "Cmd"},
{name: "r.ScreenPercentage", help: "Render  resolution
percentage", type: "Var"},
{name: "r.MSAACount", help: "MSAA sample count: \"0\"=off", type: "Var"},
];
</script></head></html>`

func TestParse_WellFormed(t *testing.T) {
	result, err := Parse(sampleDoc)
	require.NoError(t, err)
	require.Len(t, result.Commands, 3)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Duplicates)

	assert.Equal(t, "stat fps", result.Commands[0].Name)
	assert.Equal(t, "Displays frame rate", result.Commands[0].Help)
	assert.Equal(t, "Cmd", result.Commands[0].Type)

	// Whitespace runs (including the embedded newline) collapse to one space
	assert.Equal(t, "Render resolution percentage", result.Commands[1].Help)

	// Escaped quotes decode
	assert.Equal(t, `MSAA sample count: "0"=off`, result.Commands[2].Help)
}

func TestParse_CaseInsensitiveMarker(t *testing.T) {
	doc := `VAR CVars = [ {name: "stat unit", help: "x", type: "Cmd"} ];`
	result, err := Parse(doc)
	require.NoError(t, err)
	require.Len(t, result.Commands, 1)
	assert.Equal(t, "stat unit", result.Commands[0].Name)
}

func TestParse_NoMarker(t *testing.T) {
	_, err := Parse("<html><body>nothing here</body></html>")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestParse_UnterminatedArray(t *testing.T) {
	_, err := Parse(`var cvars = [ {name: "stat fps", help: "x", type: "Cmd"}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestParse_SkipsMalformedEntries(t *testing.T) {
	doc := `var cvars = [
{name: "good.one", help: "ok", type: "Var"},
{name: "broken entry without quotes},
{nonsense: true},
{name: "good.two", help: "ok", type: "Var"},
];`
	result, err := Parse(doc)
	require.NoError(t, err)

	require.Len(t, result.Commands, 2)
	assert.Equal(t, "good.one", result.Commands[0].Name)
	assert.Equal(t, "good.two", result.Commands[1].Name)
	assert.Positive(t, result.Skipped)
}

func TestParse_CountsTruncatedEntries(t *testing.T) {
	doc := `var cvars = [
{name: "good.one", help: "ok", type: "Var"},
{name: "good.two", help: "ok", type: "Var"},
{name: "good.three", help: "ok", type: "Var"},
{name: "a.truncated", help: "cut off mid
{name: "good.four", help: "ok", type: "Var"},
{name: "good.five", help: "ok", type: "Var"},
];`
	result, err := Parse(doc)
	require.NoError(t, err)

	// The entry missing its closing brace is counted, not silently dropped
	require.Len(t, result.Commands, 5)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "good.four", result.Commands[3].Name)
}

func TestParse_CountsTruncatedTrailingEntry(t *testing.T) {
	doc := `var cvars = [
{name: "good.one", help: "ok", type: "Var"},
{name: "a.truncated", help: "cut off mid
];`
	result, err := Parse(doc)
	require.NoError(t, err)

	require.Len(t, result.Commands, 1)
	assert.Equal(t, 1, result.Skipped)
}

func TestParse_SkipsEmptyNames(t *testing.T) {
	doc := `var cvars = [
{name: "", help: "no name", type: "Var"},
{name: "   ", help: "blank name", type: "Var"},
{name: "real.command", help: "ok", type: "Var"},
];`
	result, err := Parse(doc)
	require.NoError(t, err)

	require.Len(t, result.Commands, 1)
	assert.Equal(t, "real.command", result.Commands[0].Name)
	assert.Equal(t, 2, result.Skipped)
}

func TestParse_DeduplicatesFirstWins(t *testing.T) {
	doc := `var cvars = [
{name: "stat fps", help: "first", type: "Cmd"},
{name: "stat unit", help: "other", type: "Cmd"},
{name: "stat fps", help: "second", type: "Cmd"},
];`
	result, err := Parse(doc)
	require.NoError(t, err)

	require.Len(t, result.Commands, 2)
	assert.Equal(t, "first", result.Commands[0].Help)
	assert.Equal(t, 1, result.Duplicates)
}

func TestParse_PreservesDocumentOrder(t *testing.T) {
	doc := `var cvars = [
{name: "zzz.last", help: "", type: "Var"},
{name: "aaa.first", help: "", type: "Var"},
{name: "mmm.middle", help: "", type: "Var"},
];`
	result, err := Parse(doc)
	require.NoError(t, err)

	require.Len(t, result.Commands, 3)
	assert.Equal(t, "zzz.last", result.Commands[0].Name)
	assert.Equal(t, "aaa.first", result.Commands[1].Name)
	assert.Equal(t, "mmm.middle", result.Commands[2].Name)
}

func TestParse_EmptyArray(t *testing.T) {
	result, err := Parse(`var cvars = [];`)
	require.NoError(t, err)
	assert.Empty(t, result.Commands)
	assert.Equal(t, 0, result.Skipped)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.html"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestLoadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ConsoleHelp.html")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	result, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, result.Commands, 3)
}

func TestDecodeJSString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no escapes", "plain text", "plain text"},
		{"escaped quote", `say \"hi\"`, `say "hi"`},
		{"newline and tab", `a\nb\tc`, "a\nb\tc"},
		{"backslash", `path\\to`, `path\to`},
		{"unicode", `arrow \u2192 here`, "arrow → here"},
		{"hex", `deg \xb0`, "deg °"},
		{"invalid unicode passes through", `bad \uZZZZ`, `bad \uZZZZ`},
		{"unknown escape passes through", `odd \q`, `odd \q`},
		{"trailing backslash", `tail\`, `tail\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeJSString(tt.input))
		})
	}
}
