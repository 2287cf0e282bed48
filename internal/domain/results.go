package domain

import (
	"math"
	"strings"
)

// Trace is one simulator output vector.
type Trace struct {
	Name   string
	Unit   string
	Values []float64
}

// Results is the parsed output of one analysis. Scale is the independent
// variable (time, frequency or the swept source).
type Results struct {
	Title    string
	Plotname string
	Complex  bool
	Scale    Trace
	Traces   []Trace
}

// Trace looks up a vector by name, case-insensitively. The scale vector is
// found too.
func (r Results) Trace(name string) (Trace, bool) {
	if strings.EqualFold(r.Scale.Name, name) {
		return r.Scale, true
	}
	for _, t := range r.Traces {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Trace{}, false
}

// Points is the number of samples in the scale vector.
func (r Results) Points() int {
	return len(r.Scale.Values)
}

// Summary reduces every trace to its final, minimum and maximum value.
// Non-finite samples are skipped; a trace with none left is omitted.
type Summary struct {
	Analysis string             `json:"analysis"`
	Points   int                `json:"points"`
	Final    map[string]float64 `json:"final"`
	Min      map[string]float64 `json:"min"`
	Max      map[string]float64 `json:"max"`
}

func (r Results) Summary() Summary {
	s := Summary{
		Analysis: r.Plotname,
		Points:   r.Points(),
		Final:    map[string]float64{},
		Min:      map[string]float64{},
		Max:      map[string]float64{},
	}
	for _, t := range r.Traces {
		lo, hi := math.Inf(1), math.Inf(-1)
		final, seen := 0.0, false
		for _, v := range t.Values {
			// nan/inf samples cannot be encoded as JSON numbers.
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			final, seen = v, true
		}
		if !seen {
			continue
		}
		key := strings.ToLower(t.Name)
		s.Final[key] = final
		s.Min[key] = lo
		s.Max[key] = hi
	}
	return s
}

// Document is the generic (JSON-like) view of the summary that checks
// evaluate their expressions against.
func (s Summary) Document() map[string]any {
	return map[string]any{
		"analysis": s.Analysis,
		"points":   float64(s.Points),
		"final":    floatsToAny(s.Final),
		"min":      floatsToAny(s.Min),
		"max":      floatsToAny(s.Max),
	}
}

func floatsToAny(in map[string]float64) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
