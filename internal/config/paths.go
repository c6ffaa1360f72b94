package config

import (
	"os"
	"path/filepath"
	"strings"
)

// expandPath expands $VAR and ${VAR} references in p and replaces a leading
// ~ with the user's home directory.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// absPath expands p and resolves it against root. An empty path stays empty
// so an unset schema_file keeps selecting the embedded schema.
func absPath(root, p string) string {
	if p == "" {
		return ""
	}
	p = expandPath(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
