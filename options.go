package texmat

import (
	"os"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// DefaultImageExtensions are the file extensions treated as texture images.
var DefaultImageExtensions = []string{".jpg", ".jpeg", ".png", ".tif", ".tiff", ".bmp", ".webp", ".tga", ".exr"}

// DefaultThumbSuffixes are name suffixes of generated resized thumbnails.
var DefaultThumbSuffixes = []string{"_128", "_256", "_512", "_1024"}

// DefaultThumbMarker is the substring marking generated thumbnails.
const DefaultThumbMarker = "thumb"

// ScanOptions controls folder scanning.
type ScanOptions struct {
	// Logger receives per-file classification at debug level (default is no-op).
	Logger *zap.Logger
	// Extensions are the accepted image extensions, with leading dot (default DefaultImageExtensions).
	Extensions []string
	// ThumbSuffixes exclude names ending with any of them (default DefaultThumbSuffixes).
	ThumbSuffixes []string
	// ThumbMarker excludes names containing it (default DefaultThumbMarker).
	ThumbMarker string
	// Workers bounds classification fan-out in Scan (default GOMAXPROCS).
	Workers int
}

// ResolveOptions controls slot resolution.
type ResolveOptions struct {
	// Logger receives resolution decisions at debug level (default is no-op).
	Logger *zap.Logger
}

// ApplyOptions controls writing assignments into a graph.
type ApplyOptions struct {
	// Logger receives per-channel apply results (default is no-op).
	Logger *zap.Logger
	// FolderPath, when set, is stored in the graph description leaf.
	FolderPath string
	// Unit is the host-native length unit of scale leaves (default is feet).
	Unit Unit
}

// ReadOptions controls reading a graph back.
type ReadOptions struct {
	// Unit is the host-native length unit of scale leaves (default is feet).
	Unit Unit
}

// ValidateOptions controls assignment validation.
type ValidateOptions struct {
	// Root resolves relative texture paths when file checks are enabled.
	Root string
	// Extensions are the accepted image extensions (default DefaultImageExtensions).
	Extensions []string
	// ExcludePaths skips file existence checks for matching texture paths.
	// Supports exact match and prefix wildcard with '*' suffix (e.g. "D:/library/*").
	ExcludePaths []string
	// DisableFileCheck disables filesystem existence checks for texture paths.
	DisableFileCheck bool
	// DisableExtensionsCheck disables extension validation for texture paths.
	DisableExtensionsCheck bool
}

// IsRootExist reports whether the root exists and is a directory.
func (o *ValidateOptions) IsRootExist() bool {
	if o == nil {
		return false
	}
	if strings.TrimSpace(o.Root) == "" {
		return false
	}
	info, err := os.Stat(o.Root)
	if err != nil {
		return false
	}

	return info.IsDir()
}

// normalize normalizes the ScanOptions.
func (o *ScanOptions) normalize() ScanOptions {
	var out ScanOptions
	if o != nil {
		out = *o
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	if len(out.Extensions) == 0 {
		out.Extensions = DefaultImageExtensions
	}
	if out.ThumbSuffixes == nil {
		out.ThumbSuffixes = DefaultThumbSuffixes
	}
	if out.ThumbMarker == "" {
		out.ThumbMarker = DefaultThumbMarker
	}
	if out.Workers <= 0 {
		out.Workers = runtime.GOMAXPROCS(0)
	}

	return out
}

// normalize normalizes the ResolveOptions.
func (o *ResolveOptions) normalize() ResolveOptions {
	if o == nil || o.Logger == nil {
		return ResolveOptions{Logger: zap.NewNop()}
	}

	return *o
}

// normalize normalizes the ApplyOptions.
func (o *ApplyOptions) normalize() ApplyOptions {
	var out ApplyOptions
	if o != nil {
		out = *o
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	if out.Unit == "" {
		out.Unit = UnitFeet
	}

	return out
}

// normalize normalizes the ReadOptions.
func (o *ReadOptions) normalize() ReadOptions {
	if o == nil || o.Unit == "" {
		return ReadOptions{Unit: UnitFeet}
	}

	return *o
}

// normalize normalizes the ValidateOptions.
func (o *ValidateOptions) normalize() ValidateOptions {
	if o == nil {
		return ValidateOptions{DisableFileCheck: true, Extensions: DefaultImageExtensions}
	}

	out := *o
	if len(out.Extensions) == 0 {
		out.Extensions = DefaultImageExtensions
	}

	return out
}
