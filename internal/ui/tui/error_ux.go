package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yrrapt/yaaade/internal/domain"
)

var (
	reLine       = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)
	reMissingVar = regexp.MustCompile(`(?:parameter "([^"]+)"|environment variable (\S+))`)
)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			switch {
			case strings.Contains(oe.Op, "yamlfixture"):
				return "Fixture not found"
			case strings.Contains(oe.Op, "yamlsettings"):
				return "Settings file not found"
			case strings.Contains(oe.Op, "xschem"):
				return "xschem produced no netlist"
			case strings.Contains(oe.Op, "simulator.read_results"):
				return "Simulator produced no results"
			case strings.Contains(oe.Op, "workspacefinder"):
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindMissingVar:
			v := extractMissingVarName(err.Error())
			if v == "" {
				return "Missing variable"
			}
			return "Missing variable " + v

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config (" + base + ")"

		case domain.KindExecution:
			if strings.HasPrefix(oe.Op, "simulator") {
				return "Simulation failed (see logs)"
			}
			if strings.HasPrefix(oe.Op, "xschem") {
				return "xschem failed (see logs)"
			}
			return "Unexpected error (see logs)"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

func extractMissingVarName(s string) string {
	m := reMissingVar.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}
