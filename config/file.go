package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// ParseError denotes failing to read or parse a configuration file.
type ParseError struct {
	File string
	Line int // 0 if unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("while parsing config %s line %d: %s", e.File, e.Line, e.Err.Error())
	}
	return fmt.Sprintf("while parsing config %s: %s", e.File, e.Err.Error())
}

func (e *ParseError) Unwrap() error { return e.Err }

// readFile reads a config file into a map with lower cased keys.
// The format is taken from the file extension.
func readFile(name string) (map[string]interface{}, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, &ParseError{File: name, Err: err}
	}
	values, err := unmarshal(strings.TrimPrefix(filepath.Ext(name), "."), data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = name
			return nil, pe
		}
		return nil, &ParseError{File: name, Err: err}
	}
	return values, nil
}

func unmarshal(format string, data []byte) (map[string]interface{}, error) {
	var raw interface{}

	switch strings.ToLower(format) {
	case "json":
		stripComments(data)
		if err := json.Unmarshal(data, &raw); err != nil {
			if syntax, ok := err.(*json.SyntaxError); ok {
				return nil, &ParseError{Line: lineOf(data, syntax.Offset), Err: err}
			}
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case "toml":
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, err
		}
		raw = tree.ToMap()
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}

	if raw == nil {
		// empty file
		return map[string]interface{}{}, nil
	}
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return nil, fmt.Errorf("top level is not a map: %w", err)
	}
	values := make(map[string]interface{}, len(m))
	for k, v := range m {
		values[strings.ToLower(k)] = v
	}
	return values, nil
}

// stripComments blanks out // line comments outside JSON strings, keeping
// byte offsets intact for error reporting.
func stripComments(data []byte) {
	var inString, escaped, inComment bool

	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			} else {
				data[i] = ' '
			}
		case inString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		case c == '"':
			inString = true
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			inComment = true
			data[i] = ' '
		}
	}
}

func lineOf(data []byte, offset int64) int {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte{'\n'}) + 1
}
