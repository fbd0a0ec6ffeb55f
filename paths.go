package texmat

import (
	"path/filepath"
	"strings"
)

// PathResolver resolves texture paths relative to Root.
type PathResolver struct {
	Root string
}

// ResolvePath resolves a raw path against Root.
func (r PathResolver) ResolvePath(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	norm := normalizeOSPath(raw)
	if filepath.IsAbs(norm) || hasVolume(norm) {
		return filepath.Clean(norm)
	}

	if r.Root == "" {
		return filepath.Clean(norm)
	}

	return filepath.Clean(filepath.Join(r.Root, norm))
}

// SamePath reports whether two texture paths name the same file: blank on
// both sides is equal, otherwise absolute cleaned paths compare
// case-insensitively with either separator style.
func SamePath(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" && b == "" {
		return true
	}
	if a == "" || b == "" {
		return false
	}

	return strings.EqualFold(comparablePath(a), comparablePath(b))
}

// comparablePath makes a path absolute, cleans it and unifies separators.
func comparablePath(p string) string {
	norm := normalizeOSPath(p)
	if !filepath.IsAbs(norm) && !hasVolume(norm) {
		if abs, err := filepath.Abs(norm); err == nil {
			norm = abs
		}
	}
	norm = filepath.ToSlash(filepath.Clean(norm))
	if len(norm) > 1 {
		norm = strings.TrimRight(norm, "/")
	}

	return norm
}

// hasVolume checks if the path has a drive letter.
func hasVolume(p string) bool {
	return len(p) >= 2 && p[1] == ':'
}

// normalizeOSPath normalizes a path for OS-specific separators.
func normalizeOSPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return filepath.FromSlash(p)
}
