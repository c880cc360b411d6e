// Package assets resolves image and document files shipped next to the bot.
package assets

import (
	"os"
	"path/filepath"
)

// Dir is the directory holding the bot's files.
type Dir struct {
	Root string
}

// Lookup is the result of resolving a named file: Found with a path, or Missing.
type Lookup struct {
	Name  string
	Path  string
	Found bool
}

// Missing reports whether the file could not be resolved.
func (l Lookup) Missing() bool { return !l.Found }

// Lookup resolves name inside the directory. Names with path separators,
// directories and unreadable entries are reported as missing.
func (d Dir) Lookup(name string) Lookup {
	res := Lookup{Name: name}
	if name == "" || d.Root == "" || filepath.Base(name) != name {
		return res
	}
	path := filepath.Join(d.Root, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return res
	}
	res.Path = path
	res.Found = true
	return res
}

// PathOrEmpty returns the resolved path, or "" when the file is missing.
func (d Dir) PathOrEmpty(name string) string {
	return d.Lookup(name).Path
}
