package tui

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yrrapt/yaaade/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderRunDetails(t Theme, run domain.RunResult, runID string) string {
	var b strings.Builder

	status := t.Pass.Render("PASS")
	if run.Failed() {
		status = t.Fail.Render("FAIL")
	}
	b.WriteString(t.Title.Render(run.FixtureName))
	b.WriteString("  ")
	b.WriteString(status)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Simulator: %s\n", run.Simulator))
	if run.Corner != "" {
		b.WriteString(fmt.Sprintf("Corner:    %s\n", run.Corner))
	}
	if !run.StartedAt.IsZero() && !run.EndedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Duration:  %s\n", run.EndedAt.Sub(run.StartedAt)))
	}
	if run.NetlistPath != "" {
		b.WriteString(fmt.Sprintf("Netlist:   %s\n", run.NetlistPath))
	}
	if runID != "" {
		b.WriteString(fmt.Sprintf("Run ID:    %s\n", runID))
	}
	b.WriteString("\n")

	if run.Error != nil {
		b.WriteString("Error:\n")
		b.WriteString("  - kind: ")
		b.WriteString(string(run.Error.Kind))
		b.WriteString("\n  - msg: ")
		b.WriteString(clampString(run.Error.Message, 400))
		b.WriteString("\n\n")
	}

	if s := run.Summary; s != nil {
		b.WriteString(fmt.Sprintf("Results (%s, %d points):\n", s.Analysis, s.Points))
		names := make([]string, 0, len(s.Final))
		for k := range s.Final {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, n := range names {
			b.WriteString(fmt.Sprintf("  - %s final=%.6g min=%.6g max=%.6g\n", n, s.Final[n], s.Min[n], s.Max[n]))
		}
		b.WriteString("\n")
	}

	if len(run.Checks) > 0 {
		b.WriteString("Checks:\n")
		for _, c := range run.Checks {
			mark := "PASS"
			if !c.Passed {
				mark = "FAIL"
			}
			b.WriteString("  - ")
			b.WriteString(c.Name)
			b.WriteString(" [")
			b.WriteString(mark)
			b.WriteString("] ")
			b.WriteString(c.Message)
			b.WriteString("\n")
		}
	}

	return b.String()
}
