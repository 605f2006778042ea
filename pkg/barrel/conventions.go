package barrel

import (
	"path"
	"strings"
)

// DefaultExtension is the module extension used when none is configured.
const DefaultExtension = "ts"

// Marker is the comment that identifies a generated barrel.
const Marker = "// created by autobarrel, do not modify directly"

// Conventions describes how module and barrel files are named.
type Conventions struct {
	// Extension is the module extension without the leading dot.
	Extension string
}

// NewConventions returns the conventions for ext, falling back to
// DefaultExtension.
func NewConventions(ext string) Conventions {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = DefaultExtension
	}
	return Conventions{Extension: ext}
}

// BarrelName is the file name of a directory's barrel, e.g. index.ts.
func (c Conventions) BarrelName() string {
	return "index." + c.Extension
}

// BarrelPath returns the barrel file of dir.
func (c Conventions) BarrelPath(dir string) string {
	return path.Join(dir, c.BarrelName())
}

// IsBarrel reports whether p is named like a barrel file.
func (c Conventions) IsBarrel(p string) bool {
	return path.Base(p) == c.BarrelName()
}

// moduleExtensions lists the suffixes that make a file a module. ts and js
// modules may also carry JSX.
func (c Conventions) moduleExtensions() []string {
	ext := "." + c.Extension
	switch c.Extension {
	case "ts", "js":
		return []string{ext + "x", ext}
	default:
		return []string{ext}
	}
}

// IsDeclaration reports whether p is a declaration-only file such as a.d.ts.
func (c Conventions) IsDeclaration(p string) bool {
	return strings.HasSuffix(p, ".d."+c.Extension)
}

// IsModule reports whether p is an exportable module file.
func (c Conventions) IsModule(p string) bool {
	if c.IsDeclaration(p) {
		return false
	}
	for _, ext := range c.moduleExtensions() {
		if strings.HasSuffix(p, ext) && len(path.Base(p)) > len(ext) {
			return true
		}
	}
	return false
}

// TrimModuleExtension strips a module extension from p, if present.
func (c Conventions) TrimModuleExtension(p string) string {
	for _, ext := range c.moduleExtensions() {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	return p
}
