package yamlfixture

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// quantity is a number that may carry a SPICE scale suffix ("10f", "1.8",
// "2meg", "150n").
type quantity float64

var scaleSuffixes = []struct {
	suffix string
	factor float64
}{
	// longest first so "meg" and "mil" win over "m"
	{"meg", 1e6},
	{"mil", 25.4e-6},
	{"t", 1e12},
	{"g", 1e9},
	{"k", 1e3},
	{"m", 1e-3},
	{"u", 1e-6},
	{"n", 1e-9},
	{"p", 1e-12},
	{"f", 1e-15},
}

func (q *quantity) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", n.Line)
	}
	if n.Tag == "!!null" {
		*q = 0
		return nil
	}
	v, err := parseQuantity(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*q = quantity(v)
	return nil
}

func parseQuantity(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	// strip trailing unit letters after the scale ("10pf", "1.8v")
	end := len(s)
	for end > 0 && (s[end-1] < '0' || s[end-1] > '9') && s[end-1] != '.' {
		end--
	}
	num, tail := s[:end], s[end:]
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	for _, sc := range scaleSuffixes {
		if strings.HasPrefix(tail, sc.suffix) {
			return v * sc.factor, nil
		}
	}
	// a bare unit such as "1.8v"
	return v, nil
}
