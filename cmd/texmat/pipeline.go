package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/woozymasta/texmat"
	"go.uber.org/zap"
)

// transformFlags are the placement flags shared by folder commands.
type transformFlags struct {
	width    float64
	height   float64
	rotation float64
	noDetect bool
}

func (f *transformFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "repeat width in centimeters")
	cmd.Flags().Float64Var(&f.height, "height", 0, "repeat height in centimeters")
	cmd.Flags().Float64Var(&f.rotation, "rotation", 0, "rotation in degrees")
	cmd.Flags().BoolVar(&f.noDetect, "no-detect-size", false, "do not derive the size from folder or file names")
}

// resolve picks the transform: explicit flags, then a size found in the
// folder or albedo name, then the configured default.
func (f *transformFlags) resolve(cmd *cobra.Command, folder string, a *texmat.Assignments) texmat.Transform {
	t := cfg.DefaultTransform()

	if cfg.Transform.DetectSize && !f.noDetect {
		names := []string{filepath.Base(folder)}
		if s, ok := a.Get(texmat.Albedo); ok {
			names = append(names, s.File.Name)
		}
		for _, n := range names {
			if w, h, ok := texmat.DetectSize(n); ok {
				t.WidthCm, t.HeightCm = w, h
				logger.Debug("size detected", zap.String("name", n), zap.Float64("widthCm", w), zap.Float64("heightCm", h))
				break
			}
		}
	}

	if cmd.Flags().Changed("width") {
		t.WidthCm = f.width
	}
	if cmd.Flags().Changed("height") {
		t.HeightCm = f.height
	}
	if cmd.Flags().Changed("rotation") {
		t.RotationDeg = f.rotation
	}

	return t
}

// scanFolder classifies every image of folder.
func scanFolder(ctx context.Context, folder string) ([]texmat.ClassifiedFile, error) {
	opt := cfg.ScanOptions()
	opt.Logger = logger

	files, err := texmat.NewScanner(nil, opt).Scan(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", folder, err)
	}

	return files, nil
}

// assignFolder scans and resolves folder into an assignment set.
func assignFolder(ctx context.Context, cmd *cobra.Command, folder string, tf *transformFlags) (*texmat.Assignments, error) {
	files, err := scanFolder(ctx, folder)
	if err != nil {
		return nil, err
	}

	a := texmat.Resolve(files, &texmat.ResolveOptions{Logger: logger})
	a.Transform = tf.resolve(cmd, folder, a)

	return a, nil
}

// applyOverrides applies channel=path overrides; an empty path clears the channel.
func applyOverrides(a *texmat.Assignments, sets []string) error {
	for _, s := range sets {
		name, path, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("override %q: want channel=path", s)
		}
		ch, ok := texmat.ParseChannel(name)
		if !ok || ch == texmat.Unknown {
			return fmt.Errorf("override %q: unknown channel %q", s, name)
		}

		c := texmat.Classify(path)
		a.Set(ch, path, ch == texmat.Roughness && c.Invert, c.Detail)
	}

	return nil
}

// parseTint parses "r,g,b" with components in 0..255.
func parseTint(s string) (*texmat.Tint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("tint %q: want r,g,b", s)
	}

	var c [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("tint %q: %w", s, err)
		}
		c[i] = v
	}

	t := &texmat.Tint{R: c[0], G: c[1], B: c[2]}
	if !t.Valid() {
		return nil, fmt.Errorf("tint %q: components must be within 0..255", s)
	}

	return t, nil
}

// parseGrid parses "X,Y" or "XxY" tile counts.
func parseGrid(s string) (x, y int, err error) {
	a, b, ok := strings.Cut(strings.ToLower(s), ",")
	if !ok {
		a, b, ok = strings.Cut(strings.ToLower(s), "x")
	}
	if !ok {
		return 0, 0, fmt.Errorf("grid %q: want X,Y", s)
	}
	if x, err = strconv.Atoi(strings.TrimSpace(a)); err != nil {
		return 0, 0, fmt.Errorf("grid %q: %w", s, err)
	}
	if y, err = strconv.Atoi(strings.TrimSpace(b)); err != nil {
		return 0, 0, fmt.Errorf("grid %q: %w", s, err)
	}

	return x, y, nil
}
