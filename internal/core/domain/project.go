package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// Build profiles understood by the library build tool.
const (
	ProfileDebug   = "debug"
	ProfileRelease = "release"
)

// Project is the fixed set of source locations a smoke run consumes.
// Relative paths are resolved against Root.
type Project struct {
	// Root is the directory every relative path below is resolved against.
	Root string
	// LibraryDir is the native library source tree (the crate).
	LibraryDir string
	// LibraryName is the crate's library name; the archive is lib<LibraryName>.a.
	LibraryName string
	// Header is the file name the generated header is written to inside the workspace.
	Header string
	// Consumer is the C program compiled against the library.
	Consumer string
	// Sources are additional C sources compiled into the consumer.
	Sources []string
	// Headers are hand-written headers the consumer and Sources include.
	Headers []string
	// Profile is ProfileDebug or ProfileRelease.
	Profile string
	// BinaryBase is the consumer executable name before the target suffix.
	BinaryBase string
}

// Toolset names the external tools a smoke run invokes besides the compiler.
type Toolset struct {
	// Builder builds the native library, e.g. "cargo".
	Builder []string
	// HeaderGen prints the library's C header on stdout, e.g. "cbindgen".
	HeaderGen []string
}

// DefaultProject returns the built-in layout: a rust_lib crate next to main.c and a small C component.
func DefaultProject() Project {
	return Project{
		Root:        ".",
		LibraryDir:  "rust_lib",
		LibraryName: "rust_lib",
		Header:      "rust_lib.h",
		Consumer:    "main.c",
		Sources:     []string{"c_lib.c"},
		Headers:     []string{"c_lib.h"},
		Profile:     ProfileDebug,
		BinaryBase:  "main",
	}
}

// DefaultToolset returns cargo and cbindgen.
func DefaultToolset() Toolset {
	return Toolset{
		Builder:   []string{"cargo"},
		HeaderGen: []string{"cbindgen", "--lang", "c"},
	}
}

// Validate reports layouts that cannot drive a run.
func (p Project) Validate() error {
	switch {
	case p.LibraryDir == "":
		return zerr.Wrap(ErrInvalidProject, "library directory is empty")
	case p.LibraryName == "":
		return zerr.Wrap(ErrInvalidProject, "library name is empty")
	case p.Header == "" || strings.ContainsRune(p.Header, filepath.Separator):
		return zerr.With(zerr.Wrap(ErrInvalidProject, "header must be a plain file name"), "header", p.Header)
	case p.Consumer == "":
		return zerr.Wrap(ErrInvalidProject, "consumer source is empty")
	case p.BinaryBase == "":
		return zerr.Wrap(ErrInvalidProject, "binary name is empty")
	case p.Profile != ProfileDebug && p.Profile != ProfileRelease:
		return zerr.With(zerr.Wrap(ErrInvalidProject, "unknown build profile"), "profile", p.Profile)
	}
	return p.validateWorkspaceNames()
}

// validateWorkspaceNames rejects files that would land on the same workspace path.
// Everything is copied flat, next to the generated header.
func (p Project) validateWorkspaceNames() error {
	seen := map[string]string{p.Header: p.Header}
	for _, f := range p.WorkspaceFiles() {
		base := filepath.Base(f)
		if prev, ok := seen[base]; ok {
			return zerr.With(zerr.With(zerr.Wrap(ErrDuplicateSource, "workspace files share a base name"),
				"file", f), "other", prev)
		}
		seen[base] = f
	}
	return nil
}

// Path resolves a project-relative path.
func (p Project) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Root, rel)
}

// LibraryPath is the absolute-or-root-relative location of the library source tree.
func (p Project) LibraryPath() string {
	return p.Path(p.LibraryDir)
}

// ArchiveName returns the static library file name, e.g. librust_lib.a.
func (p Project) ArchiveName() string {
	return "lib" + p.LibraryName + ".a"
}

// ArchivePath returns where the build tool leaves the archive for target t.
// Cross builds land under target/<triple>/<profile>, native ones under target/<profile>.
func (p Project) ArchivePath(t Target) string {
	parts := []string{p.LibraryPath(), "target"}
	if t.Cross {
		parts = append(parts, t.Triple)
	}
	parts = append(parts, p.Profile, p.ArchiveName())
	return filepath.Join(parts...)
}

// WorkspaceFiles lists every source that must be copied into the workspace.
func (p Project) WorkspaceFiles() []string {
	files := make([]string, 0, 1+len(p.Sources)+len(p.Headers))
	files = append(files, p.Consumer)
	files = append(files, p.Sources...)
	files = append(files, p.Headers...)
	return files
}
