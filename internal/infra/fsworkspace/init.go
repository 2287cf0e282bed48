// Package fsworkspace scaffolds a yaaade workspace on disk.
package fsworkspace

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

//go:embed templates
var templatesFS embed.FS

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init creates the workspace layout and copies the templates. Existing
// files are kept unless force is set.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	for _, d := range []string{
		filepath.Join(root, "fixtures"),
		filepath.Join(root, "config"),
		filepath.Join(root, "runs"),
		filepath.Join(root, ".yaaade", "logs"),
	} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return initError(d, err)
		}
	}

	if err := ensureGitignore(root); err != nil {
		return initError(filepath.Join(root, ".gitignore"), err)
	}

	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		dst := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(p, "templates/")))
		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return initError(dst, err)
		}
		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return initError(p, err)
		}
		if err := os.WriteFile(dst, b, 0o644); err != nil {
			return initError(dst, err)
		}
		return nil
	})
}

func initError(path string, err error) error {
	return &domain.OpError{Op: "fsworkspace.init", Kind: domain.KindExecution, Path: path, Err: err}
}

const gitignoreHeader = "# yaaade"

var gitignoreEntries = []string{
	"runs/",
	"_rundir/",
	".yaaade/",
	"*.raw",
}

// ensureGitignore appends the entries the workspace generates and that are
// missing from .gitignore, creating the file if needed.
func ensureGitignore(root string) error {
	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	existing := string(b)

	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			present[trimmed] = true
		}
	}

	var missing []string
	for _, e := range gitignoreEntries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" {
		if !strings.HasSuffix(existing, "\n") {
			out.WriteByte('\n')
		}
		out.WriteByte('\n')
	}
	if !present[gitignoreHeader] {
		out.WriteString(gitignoreHeader + "\n")
	}
	out.WriteString(strings.Join(missing, "\n") + "\n")

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
