package domain

import "time"

// RunError is the serializable form of the error that stopped a run.
type RunError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func NewRunError(err error) *RunError {
	if err == nil {
		return nil
	}
	return &RunError{Kind: KindOf(err), Message: err.Error()}
}

// CheckResult is the output of a single check.
type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// RunResult represents one fixture run: netlist, simulation and checks.
type RunResult struct {
	FixtureName string        `json:"fixture_name"`
	FixturePath string        `json:"fixture_path"`
	Simulator   SimulatorKind `json:"simulator"`
	Corner      string        `json:"corner,omitempty"`
	NetlistPath string        `json:"netlist_path,omitempty"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Summary *Summary      `json:"summary,omitempty"`
	Checks  []CheckResult `json:"checks"`
	Error   *RunError     `json:"error,omitempty"`
}

// RunArtifact is the persisted form of a run.
type RunArtifact = RunResult

// Failed reports whether the run errored or any check failed.
func (r RunResult) Failed() bool {
	if r.Error != nil {
		return true
	}
	for _, c := range r.Checks {
		if !c.Passed {
			return true
		}
	}
	return false
}

// FailedChecks counts the checks that did not pass.
func (r RunResult) FailedChecks() int {
	n := 0
	for _, c := range r.Checks {
		if !c.Passed {
			n++
		}
	}
	return n
}
