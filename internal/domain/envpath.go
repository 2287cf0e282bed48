package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var pathVarToken = regexp.MustCompile(`^\$[A-Z_]+`)

// ExpandPathVar replaces a leading $UPPER_CASE token (and every other
// occurrence of the same token) with the variable's value from lookup.
// Paths without a leading token are returned unchanged.
func ExpandPathVar(path string, lookup func(string) (string, bool)) (string, error) {
	tok := pathVarToken.FindString(path)
	if tok == "" {
		return path, nil
	}

	name := tok[1:]
	val, ok := lookup(name)
	if !ok {
		return "", &OpError{
			Op:   "path.expand",
			Kind: KindMissingVar,
			Path: path,
			Err:  fmt.Errorf("%w: environment variable %s is not set", ErrMissingVar, name),
		}
	}
	return strings.ReplaceAll(path, tok, val), nil
}
