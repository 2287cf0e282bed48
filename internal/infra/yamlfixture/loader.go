// Package yamlfixture loads declarative fixtures from fixtures/*.yaml.
package yamlfixture

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

type Loader struct {
	fixturesDir string
}

type Option func(*Loader)

func WithFixturesDir(dir string) Option {
	return func(l *Loader) { l.fixturesDir = dir }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{fixturesDir: "fixtures"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.FixtureLoader = (*Loader)(nil)

func (l *Loader) LoadFixture(path string) (domain.FixtureSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.FixtureSpec{}, &domain.OpError{
			Op:   "yamlfixture.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var yf yamlFixture
	dec := yaml.NewDecoder(strings.NewReader(string(b)))
	dec.KnownFields(true)
	if err := dec.Decode(&yf); err != nil {
		return domain.FixtureSpec{}, &domain.OpError{
			Op:   "yamlfixture.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, yf)
}

// ListFixtures lists <root>/<fixturesDir>/*.yaml sorted by fixture name.
// Files whose name cannot be read fall back to the file stem.
func (l *Loader) ListFixtures(root string) ([]domain.FixtureRef, error) {
	dir := l.fixturesDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlfixture.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.FixtureRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		p := filepath.Join(dir, name)
		n, _ := readFixtureName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}
		refs = append(refs, domain.FixtureRef{Name: n, Path: p})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Resolve turns a fixture name or path into a file path. Names are looked
// up in the listing of root.
func (l *Loader) Resolve(root, nameOrPath string) (string, error) {
	if strings.HasSuffix(nameOrPath, ".yaml") || strings.HasSuffix(nameOrPath, ".yml") || strings.ContainsRune(nameOrPath, filepath.Separator) {
		return filepath.Clean(nameOrPath), nil
	}
	refs, err := l.ListFixtures(root)
	if err != nil {
		return "", err
	}
	for _, r := range refs {
		if r.Name == nameOrPath || strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path)) == nameOrPath {
			return r.Path, nil
		}
	}
	return "", &domain.OpError{
		Op:   "yamlfixture.resolve",
		Kind: domain.KindNotFound,
		Err:  errors.New("fixture " + nameOrPath + " not found"),
	}
}

func readFixtureName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}
