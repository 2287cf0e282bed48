// Package runstore persists fixture runs as JSON artifacts under the
// workspace runs directory.
package runstore

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

const (
	defaultRunsDir = "runs"
	indexFile      = "index.jsonl"
	timeLayout     = "20060102T150405Z"
)

type JSONStore struct {
	rootDir     string
	runsDirName string
	writeIndex  bool
	keepNetlist bool
	now         func() time.Time
}

type Option func(*JSONStore)

// WithIndex appends one line per run to runs/index.jsonl.
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNetlist copies the simulated netlist next to the artifact as <id>.spice.
func WithNetlist(enabled bool) Option {
	return func(s *JSONStore) { s.keepNetlist = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.Paths.RunsDir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:     root,
		runsDirName: runsDir,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ArtifactStore = (*JSONStore)(nil)

// Dir is the directory artifacts are written to.
func (s *JSONStore) Dir() string {
	if filepath.IsAbs(s.runsDirName) {
		return s.runsDirName
	}
	return filepath.Join(s.rootDir, s.runsDirName)
}

// SaveRun writes runs/<UTC start>_<fixture slug>.json and returns its id
// (the file name without extension).
func (s *JSONStore) SaveRun(run domain.RunArtifact) (string, error) {
	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{Op: "runstore.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	if run.StartedAt.IsZero() {
		run.StartedAt = s.now()
	}
	ts := run.StartedAt.UTC()

	name := run.FixtureName
	if strings.TrimSpace(name) == "" {
		name = strings.TrimSuffix(filepath.Base(run.FixturePath), filepath.Ext(run.FixturePath))
	}
	slug := slugify(name)
	if slug == "" {
		slug = "run"
	}

	id := fmt.Sprintf("%s_%s", ts.Format(timeLayout), slug)
	path := filepath.Join(dir, id+".json")

	if s.keepNetlist && run.NetlistPath != "" {
		dst := filepath.Join(dir, id+".spice")
		if err := copyFile(run.NetlistPath, dst); err != nil {
			return "", &domain.OpError{Op: "runstore.netlist", Kind: domain.KindExecution, Path: run.NetlistPath, Err: err}
		}
		run.NetlistPath = dst
	}

	b, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", &domain.OpError{Op: "runstore.marshal", Kind: domain.KindExecution, Path: path, Err: err}
	}

	if err := writeAtomic(path, b); err != nil {
		return "", err
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, run)
	}
	return id, nil
}

// IndexEntry is one line of runs/index.jsonl.
type IndexEntry struct {
	ID        string               `json:"id"`
	File      string               `json:"file"`
	Fixture   string               `json:"fixture"`
	Simulator domain.SimulatorKind `json:"simulator"`
	Corner    string               `json:"corner,omitempty"`
	Passed    bool                 `json:"passed"`
	StartedAt time.Time            `json:"started_at"`
}

func (s *JSONStore) appendIndex(dir, id string, run domain.RunArtifact) error {
	line, err := json.Marshal(IndexEntry{
		ID:        id,
		File:      id + ".json",
		Fixture:   run.FixtureName,
		Simulator: run.Simulator,
		Corner:    run.Corner,
		Passed:    !run.Failed(),
		StartedAt: run.StartedAt,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// writeAtomic writes through a temp file and a rename.
func writeAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return &domain.OpError{Op: "runstore.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "runstore.rename", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))

	lastDash := true
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
