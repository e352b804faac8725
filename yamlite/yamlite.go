// Package yamlite decodes the flat YAML subset used by line-protocol
// servers such as beanstalkd for their stats and list replies: an optional
// "---" document header followed by either "key: value" pairs or "- item"
// list entries, scalars only. It is deliberately not a general YAML parser;
// anchors, nesting, block scalars and flow collections are out of scope.
package yamlite

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// SyntaxError reports a line that does not fit the subset.
type SyntaxError struct {
	Line int    // 1-based line number
	Text string // offending line, trimmed
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("yamlite: line %d: cannot parse %q", e.Line, e.Text)
}

// Dict holds decoded "key: value" pairs with raw string values. Values stay
// strings because some numeric-looking fields (version numbers, ids) must
// not be coerced; use the typed accessors where a type is known.
type Dict map[string]string

// DecodeDict parses a flat scalar mapping.
func DecodeDict(data []byte) (Dict, error) {
	out := make(Dict)
	err := scanLines(data, func(lineno int, line string) error {
		if strings.HasPrefix(line, "- ") || line == "-" {
			return &SyntaxError{Line: lineno, Text: line}
		}
		// YAML only treats a colon as a key separator when a space (or the
		// end of the line) follows; "key:value" is a plain scalar.
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			if !strings.HasSuffix(line, ":") {
				return &SyntaxError{Line: lineno, Text: line}
			}
			key, value = strings.TrimSuffix(line, ":"), ""
		}
		if strings.TrimSpace(key) == "" {
			return &SyntaxError{Line: lineno, Text: line}
		}
		out[strings.TrimSpace(key)] = unquote(strings.TrimSpace(value))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeList parses a flat scalar sequence.
func DecodeList(data []byte) ([]string, error) {
	var out []string
	err := scanLines(data, func(lineno int, line string) error {
		item, ok := strings.CutPrefix(line, "- ")
		if !ok {
			return &SyntaxError{Line: lineno, Text: line}
		}
		out = append(out, unquote(strings.TrimSpace(item)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scanLines feeds every content line to fn, skipping the document header,
// blank lines and comments.
func scanLines(data []byte, fn func(lineno int, line string) error) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if err := fn(lineno, trimmed); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// unquote strips one matching pair of single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Get returns the raw value for key.
func (d Dict) Get(key string) (string, bool) {
	v, ok := d[key]
	return v, ok
}

// Int returns the value of key as a signed integer.
func (d Dict) Int(key string) (int64, error) {
	raw, ok := d[key]
	if !ok {
		return 0, fmt.Errorf("yamlite: key %q not present", key)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("yamlite: key %q: %w", key, err)
	}
	return n, nil
}

// Uint64 returns the value of key as an unsigned integer.
func (d Dict) Uint64(key string) (uint64, error) {
	raw, ok := d[key]
	if !ok {
		return 0, fmt.Errorf("yamlite: key %q not present", key)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("yamlite: key %q: %w", key, err)
	}
	return n, nil
}

// Bool returns the value of key as a boolean; "true"/"false" and
// "yes"/"no" are accepted.
func (d Dict) Bool(key string) (bool, error) {
	raw, ok := d[key]
	if !ok {
		return false, fmt.Errorf("yamlite: key %q not present", key)
	}
	switch raw {
	case "true", "yes":
		return true, nil
	case "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("yamlite: key %q: cannot parse %q as bool", key, raw)
}

// Seconds returns the value of key, a possibly fractional number of
// seconds, as a time.Duration. beanstalkd reports rusage times this way.
func (d Dict) Seconds(key string) (time.Duration, error) {
	raw, ok := d[key]
	if !ok {
		return 0, fmt.Errorf("yamlite: key %q not present", key)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("yamlite: key %q: %w", key, err)
	}
	return time.Duration(math.Round(f * float64(time.Second))), nil
}
