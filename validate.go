package texmat

import (
	"os"
	"path/filepath"
	"strings"
)

// IssueLevel represents severity of an issue.
type IssueLevel string

const (
	// IssueError indicates an assignment that would corrupt the material.
	IssueError IssueLevel = "error"
	// IssueWarning indicates a suspicious but applicable assignment.
	IssueWarning IssueLevel = "warning"
)

// Issue represents a validation or apply issue.
type Issue struct {
	Level   IssueLevel `json:"level" yaml:"level"`                   // Severity level
	Code    string     `json:"code,omitempty" yaml:"code,omitempty"` // Machine-readable code
	Message string     `json:"message" yaml:"message"`               // Issue message
	Path    string     `json:"path,omitempty" yaml:"path,omitempty"` // Affected channel, file or graph
}

// ValidateAssignments checks an assignment set before it is applied.
func ValidateAssignments(a *Assignments, opt *ValidateOptions) []Issue {
	if a == nil {
		return nil
	}

	vopt := opt.normalize()
	var out []Issue

	if a.Transform.WidthCm <= 0 {
		out = append(out, Issue{Level: IssueError, Code: "bad_size", Message: "width must be positive", Path: "widthCm"})
	}
	if a.Transform.HeightCm <= 0 {
		out = append(out, Issue{Level: IssueError, Code: "bad_size", Message: "height must be positive", Path: "heightCm"})
	}
	if a.Tint != nil && !a.Tint.Valid() {
		out = append(out, Issue{Level: IssueError, Code: "bad_tint", Message: "tint components must be within 0..255", Path: "tint"})
	}

	resolver := PathResolver{Root: vopt.Root}
	for _, ch := range Channels {
		s, ok := a.Slots[ch]
		if !ok {
			continue
		}
		if !s.Assigned() {
			out = append(out, Issue{Level: IssueWarning, Code: "empty_slot", Message: "slot has no file", Path: ch.String()})
			continue
		}
		if s.Channel != ch {
			out = append(out, Issue{Level: IssueError, Code: "channel_mismatch", Message: "slot stored under another channel", Path: ch.String()})
		}
		if s.Invert && ch != Roughness {
			out = append(out, Issue{Level: IssueWarning, Code: "invert_ignored", Message: "invert only applies to roughness", Path: ch.String()})
		}
		if ch == Bump && s.Detail == DetailNone {
			out = append(out, Issue{Level: IssueWarning, Code: "bump_detail", Message: "bump slot without detail", Path: s.File.Path})
		}
		if ch != Bump && s.Detail != DetailNone {
			out = append(out, Issue{Level: IssueWarning, Code: "detail_ignored", Message: "detail only applies to bump", Path: ch.String()})
		}

		if !vopt.DisableExtensionsCheck && !hasExt(filepath.Ext(s.File.Path), vopt.Extensions) {
			out = append(out, Issue{Level: IssueWarning, Code: "bad_extension", Message: "unexpected texture extension", Path: s.File.Path})
		}

		if !vopt.DisableFileCheck && !shouldExcludePath(s.File.Path, vopt.ExcludePaths) {
			p := resolver.ResolvePath(s.File.Path)
			if p != "" {
				if _, err := os.Stat(p); err != nil {
					out = append(out, Issue{Level: IssueWarning, Code: "missing_resource", Message: "texture file not found", Path: p})
				}
			}
		}
	}

	return out
}

// shouldExcludePath matches path against exact and trailing-'*' prefix patterns.
func shouldExcludePath(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	norm := matchablePath(path)
	for _, p := range patterns {
		if p == "" {
			continue
		}

		pp := matchablePath(p)
		if prefix, ok := strings.CutSuffix(pp, "*"); ok {
			if strings.HasPrefix(norm, prefix) {
				return true
			}
			continue
		}
		if norm == pp {
			return true
		}
	}

	return false
}

// matchablePath lower-cases a path and unifies separators to '/'.
func matchablePath(p string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(p), "\\", "/"))
}

// HasErrors reports whether issues contain an error-level entry.
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Level == IssueError {
			return true
		}
	}

	return false
}

// String renders the issue on one line.
func (i Issue) String() string {
	var b strings.Builder
	b.WriteString(string(i.Level))
	if i.Code != "" {
		b.WriteString(" [")
		b.WriteString(i.Code)
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(i.Message)
	if i.Path != "" {
		b.WriteString(" (")
		b.WriteString(i.Path)
		b.WriteString(")")
	}

	return b.String()
}
