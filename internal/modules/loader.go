// Package modules implements spec.md §4.6/§6's import-resolution
// interface: `import "path"` and `import! lib` need to turn a textual path
// into source text, but spec.md explicitly scopes real file *discovery*
// out ("source-file discovery for imports... only the import-module
// interface is specified"). Grounded on funvibe/funxy's own indirection
// point, `ModuleLoader interface { GetModule(path string) (interface{},
// error) }` (internal/evaluator/evaluator.go) and the directory-walking
// shape of internal/modules/loader.go, generalized to SPWN's three-tier
// search order (spec.md §6: cwd, executable dir, SPWN_PATH entries)
// while leaving glob/extension matching to an injected FileSystem.
package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spwn-lang/spwn/internal/config"
)

// Loader resolves an import path relative to the importing file's
// directory to the imported file's source text and its own directory (so
// a nested import inside it can resolve relative to that, in turn).
type Loader interface {
	Resolve(fromDir, path string, isLib bool) (source string, dir string, err error)
}

// FileSystem abstracts the actual file-discovery step PathLoader defers:
// given a candidate base path (without extension), return the full path
// of the first recognized source file that exists, or "" if none do.
// Production code wires osFileSystem; tests can inject a virtual listing.
type FileSystem interface {
	FindSource(base string) (string, error)
	ReadFile(path string) (string, error)
}

// osFileSystem is the default FileSystem, backed by the real filesystem.
type osFileSystem struct{}

func (osFileSystem) FindSource(base string) (string, error) {
	for _, ext := range config.SourceFileExtensions {
		candidate := base + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	// A bare directory import resolves to dirname.ext inside it, matching
	// funvibe/funxy's detectPackageExtension "look for a file named like
	// the directory" rule.
	if info, err := os.Stat(base); err == nil && info.IsDir() {
		name := filepath.Base(base)
		for _, ext := range config.SourceFileExtensions {
			candidate := filepath.Join(base, name+ext)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("no source file found for %q", base)
}

func (osFileSystem) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PathLoader implements Loader's search order from spec.md §6: (1) a path
// relative to the importing file's own directory, (2) the directory the
// running executable lives in, (3) each colon-separated entry of
// SPWN_PATH, tried in order, first match wins.
type PathLoader struct {
	FS          FileSystem
	ExeDir      string
	SPWNPathEnv string // colon-separated extra library directories
}

// NewPathLoader builds a PathLoader wired to the real filesystem, the
// running executable's directory, and the SPWN_PATH environment variable.
func NewPathLoader() *PathLoader {
	exeDir := "."
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}
	return &PathLoader{FS: osFileSystem{}, ExeDir: exeDir, SPWNPathEnv: os.Getenv("SPWN_PATH")}
}

// searchDirs returns the ordered directories PathLoader tries a bare
// library import (`import! lib`) against; a relative `import "path"`
// instead resolves only against fromDir, matching spec.md's distinction
// between a project-local file import and a library import.
func (l *PathLoader) searchDirs(fromDir string) []string {
	dirs := []string{fromDir, l.ExeDir}
	if l.SPWNPathEnv != "" {
		dirs = append(dirs, strings.Split(l.SPWNPathEnv, ":")...)
	}
	return dirs
}

// Resolve implements Loader. isLib selects `import! lib`'s multi-directory
// search; a plain `import "path"` only ever resolves relative to fromDir.
func (l *PathLoader) Resolve(fromDir, path string, isLib bool) (string, string, error) {
	dirs := []string{fromDir}
	if isLib {
		dirs = l.searchDirs(fromDir)
	}
	var lastErr error
	for _, dir := range dirs {
		base := filepath.Join(dir, path)
		found, err := l.FS.FindSource(base)
		if err != nil {
			lastErr = err
			continue
		}
		src, err := l.FS.ReadFile(found)
		if err != nil {
			return "", "", err
		}
		return src, filepath.Dir(found), nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no source file found for %q", path)
	}
	return "", "", lastErr
}
