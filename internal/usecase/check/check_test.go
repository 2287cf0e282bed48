package check

import (
	"strings"
	"testing"

	"github.com/yrrapt/yaaade/internal/domain"
)

func strPtr(s string) *string { return &s }
func fPtr(f float64) *float64 { return &f }

func inverterSummary() *domain.Summary {
	return &domain.Summary{
		Analysis: "Transient Analysis",
		Points:   3,
		Final:    map[string]float64{"v(out)": 0.02, "i(vvdd)": -1e-6},
		Min:      map[string]float64{"v(out)": 0.01, "i(vvdd)": -2e-3},
		Max:      map[string]float64{"v(out)": 1.79, "i(vvdd)": 0},
	}
}

func TestEvaluate_Passing(t *testing.T) {
	specs := []domain.CheckSpec{
		{Expr: `$.max["v(out)"]`, Gt: fPtr(1.7)},
		{Expr: `$.final["v(out)"]`, Lt: fPtr(0.1)},
		{Expr: `$.analysis`, Contains: strPtr("Transient"), Matches: strPtr(`^Trans.*Analysis$`)},
		{Expr: `$.points`, Eq: strPtr("3")},
		{Expr: `$.min`, Exists: true},
	}

	got := Evaluate(specs, inverterSummary())
	if len(got) != 6 {
		t.Fatalf("expected 6 results, got %d: %+v", len(got), got)
	}
	for _, r := range got {
		if !r.Passed {
			t.Fatalf("expected pass: %+v", r)
		}
	}
}

func TestEvaluate_Failing(t *testing.T) {
	cases := []struct {
		name string
		spec domain.CheckSpec
		msg  string
	}{
		{"gt", domain.CheckSpec{Expr: `$.max["v(out)"]`, Gt: fPtr(1.8)}, "expected > 1.8, got 1.79"},
		{"lt", domain.CheckSpec{Expr: `$.final["v(out)"]`, Lt: fPtr(0.01)}, "expected < 0.01"},
		{"eq", domain.CheckSpec{Expr: `$.analysis`, Eq: strPtr("AC Analysis")}, `expected "AC Analysis"`},
		{"missing key", domain.CheckSpec{Expr: `$.max["v(nope)"]`, Exists: true}, "v(nope)"},
		{"bad regex", domain.CheckSpec{Expr: `$.analysis`, Matches: strPtr("(")}, "invalid regex"},
		{"not numeric", domain.CheckSpec{Expr: `$.analysis`, Gt: fPtr(0)}, "not numeric"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate([]domain.CheckSpec{tc.spec}, inverterSummary())
			if len(got) != 1 {
				t.Fatalf("expected 1 result, got %d", len(got))
			}
			if got[0].Passed {
				t.Fatalf("expected failure: %+v", got[0])
			}
			if !strings.Contains(got[0].Message, tc.msg) {
				t.Fatalf("message %q does not mention %q", got[0].Message, tc.msg)
			}
		})
	}
}

func TestEvaluate_NoResults(t *testing.T) {
	got := Evaluate([]domain.CheckSpec{{Expr: "$.points", Exists: true, Gt: fPtr(0)}}, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	for _, r := range got {
		if r.Passed || !strings.Contains(r.Message, "no simulation results") {
			t.Fatalf("unexpected result: %+v", r)
		}
	}
}

func TestEvaluate_NoChecks(t *testing.T) {
	got := Evaluate(nil, inverterSummary())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
