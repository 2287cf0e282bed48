// Package check evaluates fixture checks: JSONPath expressions over the
// summary document of a run.
package check

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/yrrapt/yaaade/internal/domain"
)

// Evaluate runs every check against the summary. A nil summary (the run
// produced no results) fails every check.
func Evaluate(specs []domain.CheckSpec, summary *domain.Summary) []domain.CheckResult {
	if len(specs) == 0 {
		return []domain.CheckResult{}
	}

	var doc any
	if summary != nil {
		doc = summary.Document()
	}

	out := make([]domain.CheckResult, 0, len(specs))
	for _, spec := range specs {
		var (
			val    any
			getErr error
		)
		if doc == nil {
			getErr = fmt.Errorf("no simulation results")
		} else {
			val, getErr = jsonpath.Get(spec.Expr, doc)
		}
		out = append(out, apply(spec, val, getErr)...)
	}
	return out
}

func apply(spec domain.CheckSpec, val any, getErr error) []domain.CheckResult {
	var out []domain.CheckResult
	if spec.Exists {
		out = append(out, Exists(spec.Expr, val, getErr))
	}
	if spec.Eq != nil {
		out = append(out, Eq(spec.Expr, val, getErr, *spec.Eq))
	}
	if spec.Contains != nil {
		out = append(out, Contains(spec.Expr, val, getErr, *spec.Contains))
	}
	if spec.Matches != nil {
		out = append(out, Matches(spec.Expr, val, getErr, *spec.Matches))
	}
	if spec.Gt != nil {
		out = append(out, Gt(spec.Expr, val, getErr, *spec.Gt))
	}
	if spec.Lt != nil {
		out = append(out, Lt(spec.Expr, val, getErr, *spec.Lt))
	}
	return out
}

func pass(name, format string, args ...any) domain.CheckResult {
	return domain.CheckResult{Name: name, Passed: true, Message: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) domain.CheckResult {
	return domain.CheckResult{Name: name, Passed: false, Message: fmt.Sprintf(format, args...)}
}

func Exists(expr string, val any, getErr error) domain.CheckResult {
	const name = "exists"
	if getErr != nil {
		return fail(name, "%s: %v", expr, getErr)
	}
	if isEmpty(val) {
		return fail(name, "%s: expected a value, got none", expr)
	}
	return pass(name, "%s exists", expr)
}

func Eq(expr string, val any, getErr error, want string) domain.CheckResult {
	const name = "eq"
	s, err := asString(val, getErr)
	if err != nil {
		return fail(name, "%s: %v", expr, err)
	}
	if s != want {
		return fail(name, "%s: expected %q, got %q", expr, want, s)
	}
	return pass(name, "%s == %q", expr, want)
}

func Contains(expr string, val any, getErr error, sub string) domain.CheckResult {
	const name = "contains"
	s, err := asString(val, getErr)
	if err != nil {
		return fail(name, "%s: %v", expr, err)
	}
	if !strings.Contains(s, sub) {
		return fail(name, "%s: %q does not contain %q", expr, s, sub)
	}
	return pass(name, "%s contains %q", expr, sub)
}

func Matches(expr string, val any, getErr error, pattern string) domain.CheckResult {
	const name = "matches"
	s, err := asString(val, getErr)
	if err != nil {
		return fail(name, "%s: %v", expr, err)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fail(name, "%s: invalid regex %q: %v", expr, pattern, err)
	}
	if !re.MatchString(s) {
		return fail(name, "%s: %q does not match %q", expr, s, pattern)
	}
	return pass(name, "%s matches %q", expr, pattern)
}

func Gt(expr string, val any, getErr error, threshold float64) domain.CheckResult {
	const name = "gt"
	f, err := asFloat(val, getErr)
	if err != nil {
		return fail(name, "%s: %v", expr, err)
	}
	if !(f > threshold) {
		return fail(name, "%s: expected > %g, got %g", expr, threshold, f)
	}
	return pass(name, "%s: %g > %g", expr, f, threshold)
}

func Lt(expr string, val any, getErr error, threshold float64) domain.CheckResult {
	const name = "lt"
	f, err := asFloat(val, getErr)
	if err != nil {
		return fail(name, "%s: %v", expr, err)
	}
	if !(f < threshold) {
		return fail(name, "%s: expected < %g, got %g", expr, threshold, f)
	}
	return pass(name, "%s: %g < %g", expr, f, threshold)
}

func asString(val any, getErr error) (string, error) {
	if getErr != nil {
		return "", getErr
	}
	switch v := val.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", fmt.Errorf("value is null")
	default:
		return fmt.Sprint(v), nil
	}
}

func asFloat(val any, getErr error) (float64, error) {
	if getErr != nil {
		return 0, getErr
	}
	switch v := val.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value of type %T is not numeric", val)
	}
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
