// Package config holds the small set of compile-wide constants and
// project-level settings spec.md's ambient stack implies but never ties to
// any one module: the language version, recognized source extensions, test
// mode, and the builtin-permission flags spec.md §6 mentions in passing
// ("Flags toggle builtin-permission categories (filesystem, regex, etc.)").
// Grounded on internal/config/constants.go, re-pointed at SPWN's own
// extension and builtin surface.
package config

// Version is the current compiler version.
var Version = "0.1.0"

const SourceFileExt = ".spwn"

// SourceFileExtensions are all recognized source file extensions, checked
// in order by internal/modules' PathLoader when resolving an import's bare
// module name to a file on disk.
var SourceFileExtensions = []string{".spwn", ".spwnc"}

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode is a flag for test runs, kept in the shape of funvibe/funxy's
// own IsTestMode. Nothing in this module sets it, so it stays false unless
// a caller assigns it.
var IsTestMode = false
