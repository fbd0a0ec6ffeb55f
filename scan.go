package texmat

import (
	"context"
	"iter"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TextureFile is one candidate image file of a folder.
type TextureFile struct {
	Path string `json:"path" yaml:"path"` // Absolute path
	Name string `json:"name" yaml:"name"` // Display name (file name)
}

// NewTextureFile builds a TextureFile from a path.
func NewTextureFile(path string) TextureFile {
	return TextureFile{Path: path, Name: filepath.Base(path)}
}

// ClassifiedFile pairs a file with its classification.
type ClassifiedFile struct {
	File           TextureFile `json:"file" yaml:"file"`
	Classification `yaml:",inline"`
}

// Scanner enumerates texture images of folders.
type Scanner struct {
	fs  billy.Filesystem
	opt ScanOptions
	os  bool // fs is the OS file system; folders are made absolute
}

// NewScanner creates a scanner over fsys. A nil fsys scans the OS file system.
func NewScanner(fsys billy.Filesystem, opt *ScanOptions) *Scanner {
	s := &Scanner{fs: fsys, opt: opt.normalize()}
	if s.fs == nil {
		s.fs = osfs.New("/")
		s.os = true
	}

	return s
}

// Files returns the image files of folder, sorted by name.
//
// The sequence re-reads the folder every time it is ranged over. A missing or
// unreadable folder yields nothing.
func (s *Scanner) Files(folder string) iter.Seq[TextureFile] {
	return func(yield func(TextureFile) bool) {
		dir := s.folderPath(folder)
		infos, err := s.fs.ReadDir(dir)
		if err != nil {
			return
		}

		sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
		for _, fi := range infos {
			if fi.IsDir() || !s.accept(fi.Name()) {
				continue
			}
			if !yield(NewTextureFile(s.fs.Join(dir, fi.Name()))) {
				return
			}
		}
	}
}

// Scan classifies every image file of folder, in enumeration order.
// Only context cancellation is reported as an error.
func (s *Scanner) Scan(ctx context.Context, folder string) ([]ClassifiedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var files []TextureFile
	for f := range s.Files(folder) {
		files = append(files, f)
	}

	out := make([]ClassifiedFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opt.Workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = ClassifiedFile{File: f, Classification: Classify(f.Name)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, cf := range out {
		s.opt.Logger.Debug("classified",
			zap.String("file", cf.File.Name),
			zap.Stringer("channel", cf.Channel),
			zap.Bool("invert", cf.Invert),
			zap.String("label", cf.Label))
	}

	return out, nil
}

// accept applies the extension and thumbnail exclusion rules to a file name.
func (s *Scanner) accept(name string) bool {
	ext := filepath.Ext(name)
	if !hasExt(ext, s.opt.Extensions) {
		return false
	}

	stem := strings.ToLower(strings.TrimSuffix(name, ext))
	for _, suf := range s.opt.ThumbSuffixes {
		if suf != "" && strings.HasSuffix(stem, strings.ToLower(suf)) {
			return false
		}
	}

	return !strings.Contains(stem, strings.ToLower(s.opt.ThumbMarker))
}

// folderPath makes folder absolute when scanning the OS file system.
func (s *Scanner) folderPath(folder string) string {
	if !s.os {
		return folder
	}
	if abs, err := filepath.Abs(folder); err == nil {
		return abs
	}

	return folder
}

// hasExt reports whether ext is in exts, case-insensitively.
func hasExt(ext string, exts []string) bool {
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}

	return false
}
