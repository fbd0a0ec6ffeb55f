package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/woozymasta/texmat"
	"github.com/woozymasta/texmat/memhost"
	"go.uber.org/zap"
)

// applyFlags are the flags of commands that write a folder into a material.
type applyFlags struct {
	transformFlags
	material string
	tint     string
	tiles    string
	sets     []string
	offset   bool
	dryRun   bool
	force    bool
}

func (f *applyFlags) register(cmd *cobra.Command) {
	f.transformFlags.register(cmd)
	cmd.Flags().StringVarP(&f.material, "material", "m", "", "material name (default is the folder name)")
	cmd.Flags().StringVar(&f.tint, "tint", "", "albedo tint as r,g,b in 0..255")
	cmd.Flags().StringVar(&f.tiles, "tiles", "", "surface pattern tile counts as X,Y")
	cmd.Flags().BoolVar(&f.offset, "offset", false, "offset every other tile row by half a tile")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "override a channel as channel=path (empty path clears)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the assignment without writing the library")
	cmd.Flags().BoolVar(&f.force, "force", false, "write even when every bitmap is unchanged")
}

// applyReport is the printed outcome of one apply.
type applyReport struct {
	Result      *texmat.ApplyResult `yaml:"result,omitempty"`
	Pattern     *texmat.Pattern     `yaml:"pattern,omitempty"`
	Assignments *texmat.Assignments `yaml:"assignments,omitempty"`
	Material    string              `yaml:"material"`
	Issues      []texmat.Issue      `yaml:"issues,omitempty"`
	Created     bool                `yaml:"created"`
	Unchanged   bool                `yaml:"unchanged"`
}

var applyOpts applyFlags

var applyCmd = &cobra.Command{
	Use:   "apply [folder]",
	Short: "Write the textures of a folder into a material",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadLibrary()
		if err != nil {
			return err
		}

		rep, err := applyFolder(cmd.Context(), cmd, h, args[0], &applyOpts)
		if err != nil {
			return err
		}
		if !applyOpts.dryRun && !rep.Unchanged {
			if err := saveLibrary(h); err != nil {
				return err
			}
		}

		return printYAML(cmd.OutOrStdout(), rep)
	},
}

func init() {
	applyOpts.register(applyCmd)
	rootCmd.AddCommand(applyCmd)
}

// applyFolder resolves folder and writes it into the material of h.
// The caller persists h.
func applyFolder(ctx context.Context, cmd *cobra.Command, h *memhost.Host, folder string, f *applyFlags) (*applyReport, error) {
	var tilesX, tilesY int
	if f.tiles != "" {
		var err error
		if tilesX, tilesY, err = parseGrid(f.tiles); err != nil {
			return nil, err
		}
		if tilesX < 0 || tilesY < 0 {
			return nil, fmt.Errorf("grid %q: tile counts must not be negative", f.tiles)
		}
	}

	a, err := assignFolder(ctx, cmd, folder, &f.transformFlags)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(a, f.sets); err != nil {
		return nil, err
	}
	if f.tint != "" {
		if a.Tint, err = parseTint(f.tint); err != nil {
			return nil, err
		}
	}

	name := f.material
	if name == "" {
		name = filepath.Base(folder)
	}
	log := logger.With(zap.String("material", name))

	rep := &applyReport{Material: name, Issues: texmat.ValidateAssignments(a, cfg.ValidateOptions())}
	for _, is := range rep.Issues {
		log.Warn("assignment issue", zap.String("issue", is.String()))
	}
	if texmat.HasErrors(rep.Issues) {
		return rep, fmt.Errorf("material %q: assignment has errors", name)
	}

	if f.dryRun {
		rep.Assignments = a
		return rep, nil
	}

	g, created, err := texmat.EnsureGraph(h, name)
	if err != nil {
		return nil, err
	}
	rep.Created = created
	if created {
		log.Info("material created from template")
	}

	if !created && !f.force && f.tiles == "" && texmat.IsCurrent(g, a, &texmat.ReadOptions{Unit: h.Unit()}) {
		log.Info("material unchanged")
		rep.Unchanged = true
		return rep, nil
	}

	abs, err := filepath.Abs(folder)
	if err != nil {
		abs = folder
	}
	rep.Result, err = texmat.Apply(ctx, g, a, &texmat.ApplyOptions{
		Logger:     logger,
		FolderPath: abs,
		Unit:       h.Unit(),
	})
	if err != nil {
		return nil, err
	}

	if f.tiles != "" {
		p, ok, err := texmat.ApplyTiles(h, g, a.Transform.WidthCm, a.Transform.HeightCm, tilesX, tilesY, f.offset)
		if err != nil {
			return nil, err
		}
		if ok {
			rep.Pattern = &p
		}
	}

	return rep, nil
}
