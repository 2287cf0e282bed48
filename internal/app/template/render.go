// Package template renders {{name}} fixture parameters into netlist text.
package template

import (
	"fmt"
	"strings"

	"github.com/yrrapt/yaaade/internal/domain"
)

const op = "template.render"

// RenderString replaces {{name}} placeholders with params values.
// Unknown names are missing_variable errors; malformed placeholders are
// invalid_config.
func RenderString(input string, params domain.Vars) (string, error) {
	if !strings.Contains(input, "{{") {
		return input, nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", malformed(input, "unclosed placeholder")
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", malformed(input, "empty placeholder")
		}

		value, ok := params[key]
		if !ok {
			return "", &domain.OpError{
				Op:   op,
				Kind: domain.KindMissingVar,
				Err:  fmt.Errorf("%w: parameter %q is not defined", domain.ErrMissingVar, key),
			}
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

// RenderStrings renders every element, returning a new slice.
func RenderStrings(in []string, params domain.Vars) ([]string, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		r, err := RenderString(s, params)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// Placeholders lists the parameter names referenced by input, in order of
// first appearance. Malformed placeholders are skipped.
func Placeholders(input string) []string {
	var names []string
	seen := map[string]bool{}
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			return names
		}
		rest = rest[start+2:]
		end := strings.Index(rest, "}}")
		if end == -1 {
			return names
		}
		key := strings.TrimSpace(rest[:end])
		rest = rest[end+2:]
		if key != "" && !seen[key] {
			seen[key] = true
			names = append(names, key)
		}
	}
}

func malformed(input, msg string) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%w: %s in %q", domain.ErrInvalidConfig, msg, input),
	}
}
