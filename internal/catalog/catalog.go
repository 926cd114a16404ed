// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jeranaias/uecast/internal/util"
)

// ErrUnavailable is returned when the catalog document is missing, unreadable,
// or does not contain the cvars array at all. Callers degrade to an empty
// catalog rather than aborting.
var ErrUnavailable = errors.New("catalog unavailable")

// Command is a single console command from the engine export.
type Command struct {
	Name string // e.g. "r.ScreenPercentage"
	Help string // whitespace-collapsed help text, may be empty
	Type string // engine classification: Var / Cmd / Exec
}

// LoadResult is the outcome of a catalog load. Skipped counts malformed or
// nameless entries; Duplicates counts repeated names (first occurrence wins).
// A partial load with skips is still a usable catalog.
type LoadResult struct {
	Commands   []Command
	Skipped    int
	Duplicates int
}

// =============================================================================
// PARSING
// =============================================================================

var (
	// Case-insensitive: older engine builds emit "var CVars".
	arrayStartRe = regexp.MustCompile(`(?i)var\s+cvars\s*=\s*\[`)
	arrayEndRe   = regexp.MustCompile(`\];`)

	// A well-formed entry. The (?:\\.|[^"])* body tolerates escaped quotes
	// inside the string values.
	entryRe = regexp.MustCompile(`(?s)\{\s*name\s*:\s*"((?:\\.|[^"])*)"\s*,\s*help\s*:\s*"((?:\\.|[^"])*)"\s*,\s*type\s*:\s*"((?:\\.|[^"])*)"\s*\}`)

	// Any object block inside the array. Entries never nest braces, so this
	// is enough to count blocks that entryRe rejects.
	objectRe = regexp.MustCompile(`(?s)\{[^{}]*\}`)
)

// LoadFile reads and parses the catalog document at path.
func LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w: %w", path, ErrUnavailable, err)
	}
	return Parse(string(data))
}

// Parse extracts the command catalog from the document content.
func Parse(content string) (*LoadResult, error) {
	start := arrayStartRe.FindStringIndex(content)
	if start == nil {
		return nil, fmt.Errorf("no cvars array in document: %w", ErrUnavailable)
	}

	end := arrayEndRe.FindStringIndex(content[start[1]:])
	if end == nil {
		return nil, fmt.Errorf("unterminated cvars array: %w", ErrUnavailable)
	}
	block := content[start[1] : start[1]+end[0]]

	result := &LoadResult{}
	seen := make(map[string]struct{})

	last := 0
	for _, loc := range objectRe.FindAllStringIndex(block, -1) {
		// An opening brace between object blocks is a truncated entry the
		// object regex could not consume. Count it, don't lose it silently.
		result.Skipped += strings.Count(block[last:loc[0]], "{")
		last = loc[1]

		m := entryRe.FindStringSubmatch(block[loc[0]:loc[1]])
		if m == nil {
			result.Skipped++
			continue
		}

		name := strings.TrimSpace(decodeJSString(m[1]))
		if name == "" {
			result.Skipped++
			continue
		}
		if _, dup := seen[name]; dup {
			result.Duplicates++
			continue
		}
		seen[name] = struct{}{}

		result.Commands = append(result.Commands, Command{
			Name: name,
			Help: util.CollapseSpace(decodeJSString(m[2])),
			Type: strings.TrimSpace(decodeJSString(m[3])),
		})
	}
	result.Skipped += strings.Count(block[last:], "{")

	return result, nil
}

// =============================================================================
// JS STRING DECODING
// =============================================================================

// decodeJSString resolves the escape sequences the engine emits inside the
// double-quoted JS string literals. Unknown escapes pass through verbatim.
func decodeJSString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '/':
			b.WriteByte('/')
		case 'u':
			if i+4 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(v))
					i += 4
					continue
				}
			}
			b.WriteString(`\u`)
		case 'x':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 16); err == nil {
					b.WriteRune(rune(v))
					i += 2
					continue
				}
			}
			b.WriteString(`\x`)
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}

	return b.String()
}
