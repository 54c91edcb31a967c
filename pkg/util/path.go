package util

import (
	"os"
	"path/filepath"
	"strings"
)

var UseWorkingDir = false

// RelativePath resolves name against the directory of the executable.
func RelativePath(name string) string {
	if UseWorkingDir {
		return name
	}

	if filepath.IsAbs(name) {
		return name
	}
	e, _ := os.Executable()
	return filepath.Join(filepath.Dir(e), name)
}

// SplitExt splits name into its base and extension. Names with a single
// leading dot (".bashrc") have no extension.
func SplitExt(name string) (string, string) {
	if strings.HasPrefix(name, ".") && strings.Count(name, ".") == 1 {
		return name, ""
	}

	ext := filepath.Ext(name)
	if ext == name {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}
