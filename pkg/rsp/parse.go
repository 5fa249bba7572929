package rsp

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// boolFlags take their value as a separate token in response files. Cobra
// needs the "--flag=value" form for booleans.
var boolFlags = map[string]bool{
	"--note":               true,
	"-n":                   true,
	"--remove-empty-lines": true,
	"-r":                   true,
	"--keep-sources":       true,
	"--debug":              true,
}

// Parse splits response file content into arguments. Tokens are separated by
// whitespace, double quotes group, and lines starting with '#' are comments.
func Parse(content string) ([]string, error) {
	var tokens []string
	for lineNo, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lineTokens, err := splitLine(trimmed)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		tokens = append(tokens, lineTokens...)
	}
	return joinBoolValues(tokens), nil
}

func splitLine(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inToken bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			end := closingQuote(line, i)
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote at column %d", i+1)
			}
			unquoted, err := strconv.Unquote(line[i : end+1])
			if err != nil {
				return nil, fmt.Errorf("invalid quoted value at column %d: %w", i+1, err)
			}
			current.WriteString(unquoted)
			inToken = true
			i = end
		case c == ' ' || c == '\t':
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteByte(c)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

// closingQuote returns the index of the quote that closes the one at start.
func closingQuote(line string, start int) int {
	for i := start + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

func joinBoolValues(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if boolFlags[tok] && i+1 < len(tokens) {
			if _, err := strconv.ParseBool(tokens[i+1]); err == nil {
				out = append(out, tok+"="+strings.ToLower(tokens[i+1]))
				i++
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}

// Expand replaces every "@path" argument with the arguments parsed from that
// file. Other arguments pass through unchanged.
func Expand(fs billy.Filesystem, args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if len(arg) < 2 || !strings.HasPrefix(arg, "@") {
			out = append(out, arg)
			continue
		}
		path, err := filepath.Abs(arg[1:])
		if err != nil {
			return nil, fmt.Errorf("failed to resolve response file %s: %w", arg[1:], err)
		}
		content, err := util.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read response file %s: %w", path, err)
		}
		parsed, err := Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse response file %s: %w", path, err)
		}
		out = append(out, parsed...)
	}
	return out, nil
}
