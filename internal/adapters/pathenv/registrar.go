// Package pathenv registers tool directories on the search path of the
// current process and of later CI job steps.
package pathenv

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PathRegistrar = (*Registrar)(nil)

// Registrar implements ports.PathRegistrar.
type Registrar struct {
	mu         sync.Mutex
	pathFile   string
	registered []string
}

// NewRegistrar creates a Registrar. pathFile is the job path file
// (GITHUB_PATH); empty disables persistence.
func NewRegistrar(pathFile string) *Registrar {
	return &Registrar{pathFile: pathFile}
}

// AddPath prepends dir to PATH and appends it to the job path file.
// A directory already on PATH moves to the front instead of repeating.
func (r *Registrar) AddPath(dir string) error {
	if dir == "" {
		return zerr.Wrap(zerr.New("empty directory"), domain.ErrPathRegistration.Error())
	}
	dir = filepath.Clean(dir)

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := filepath.SplitList(os.Getenv("PATH"))
	entries = slices.DeleteFunc(entries, func(e string) bool {
		return e == "" || filepath.Clean(e) == dir
	})
	entries = append([]string{dir}, entries...)

	if err := os.Setenv("PATH", strings.Join(entries, string(os.PathListSeparator))); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPathRegistration.Error()), "path", dir)
	}

	if r.pathFile != "" {
		if err := appendLine(r.pathFile, dir); err != nil {
			wrapped := zerr.With(zerr.Wrap(err, domain.ErrPathRegistration.Error()), "path", dir)
			return zerr.With(wrapped, "path_file", r.pathFile)
		}
	}

	if !slices.Contains(r.registered, dir) {
		r.registered = append(r.registered, dir)
	}
	return nil
}

// Registered returns the directories added so far, in first-seen order.
func (r *Registrar) Registered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.registered)
}

func appendLine(path, line string) error {
	//nolint:gosec // path is the runner-provided job path file
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
