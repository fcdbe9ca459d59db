package modules

import (
	"path/filepath"

	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/token"
	"github.com/spwn-lang/spwn/internal/value"
)

// RunFile lexes, parses, and evaluates one resolved module file, returning
// the StoredValue its body exports. internal/compiler supplies this
// (running its own lex→parse→evaluate pipeline against source/file/dir)
// since internal/modules cannot import internal/evaluator without creating
// an import cycle back through internal/evaluator's Import hook.
type RunFile func(source, file, dir string) (value.StoredValue, *diagnostic.Diagnostic)

// Manager resolves import paths to their exported value, caching every
// distinct resolved file so re-importing it (from multiple sibling
// modules, or from an `extract import "x"` repeated in one file) reuses
// one evaluation, and detecting import cycles the way funvibe/funxy's own
// Loader.Processing map does for its own module graph.
type Manager struct {
	loader     Loader
	cache      map[string]value.StoredValue
	processing map[string]bool
}

// NewManager builds a Manager around loader, ready for a fresh compile.
func NewManager(loader Loader) *Manager {
	return &Manager{loader: loader, cache: map[string]value.StoredValue{}, processing: map[string]bool{}}
}

// Resolve implements the body of internal/evaluator's Evaluator.Import
// hook: look up path (relative to fromDir for a plain import, or via the
// loader's full search order for `import! lib`), run it at most once per
// distinct resolved file, and return its exported value. span is the
// importing expression's location, used only to anchor any failure
// diagnostic at the `import` site rather than the unresolved target.
func (m *Manager) Resolve(span token.Span, fromDir, path string, isLib bool, run RunFile) (value.StoredValue, *diagnostic.Diagnostic) {
	source, dir, err := m.loader.Resolve(fromDir, path, isLib)
	if err != nil {
		return 0, diagnostic.PackageError(span, path, err.Error())
	}
	key := filepath.Join(dir, filepath.Base(path))

	if h, ok := m.cache[key]; ok {
		return h, nil
	}
	if m.processing[key] {
		return 0, diagnostic.PackageError(span, path, "import cycle detected")
	}
	m.processing[key] = true
	defer delete(m.processing, key)

	h, diag := run(source, key, dir)
	if diag != nil {
		if diag.Kind == diagnostic.KindSyntax {
			return 0, diagnostic.PackageSyntaxError(span, path, diag)
		}
		return 0, diagnostic.PackageError(span, path, diag.Message)
	}
	m.cache[key] = h
	return h, nil
}
