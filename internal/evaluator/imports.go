package evaluator

import (
	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/value"
)

// evalImport resolves `import "path"` / `import! lib` through the Import
// hook internal/compiler wires in, caching nothing here: internal/modules
// owns its own cache keyed by resolved path, since the same module may be
// imported from several files within one compile.
func (e *Evaluator) evalImport(n *ast.ImportExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	if e.Import == nil {
		return 0, e.custom(n, "imports are not available in this evaluation context")
	}
	h, err := e.Import(e.span(n.GetToken()), n.Path, n.IsLib)
	if err != nil {
		return 0, err
	}
	return h, nil
}
