package barrel

import (
	"path"
	"strings"
)

// Render produces the barrel content for dir from its exports. Exports are
// rendered in sorted path order regardless of the order they are given in,
// so the output only depends on the set of exports.
func Render(conv Conventions, dir string, exports []string, prefix string) string {
	sorted := append([]string(nil), exports...)
	sortStrings(sorted)

	lines := []string{Marker + "\n"}
	for _, export := range sorted {
		if export == conv.BarrelPath(dir) {
			continue
		}
		lines = append(lines, "export * from './"+specifier(conv, dir, export)+"'")
	}

	content := strings.Join(lines, "\n")
	if prefix != "" {
		content = prefix + "\n" + content
	}
	return content
}

// specifier returns the import path of export as seen from dir. Modules lose
// their extension; sub-barrel directories get a trailing slash.
func specifier(conv Conventions, dir, export string) string {
	rel := relative(dir, export)
	if path.Ext(rel) == "" {
		return rel + "/"
	}
	return conv.TrimModuleExtension(rel)
}

func relative(dir, p string) string {
	if dir == "." {
		return p
	}
	return strings.TrimPrefix(p, dir+"/")
}
