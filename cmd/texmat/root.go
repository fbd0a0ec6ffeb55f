package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/woozymasta/texmat"
	"github.com/woozymasta/texmat/internal/config"
	"github.com/woozymasta/texmat/internal/logging"
	"github.com/woozymasta/texmat/memhost"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	// Global flags
	configPath  string
	libraryPath string
	verbose     bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "texmat",
	Short: "Build physically based materials from texture folders",
	Long: `texmat classifies the image files of a folder by texture channel
(albedo, roughness, reflection, metalness, bump, opacity, emissive), resolves
one file per channel and writes the result into a material graph of a
material library document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if libraryPath != "" {
			cfg.Library = libraryPath
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Encoding, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "configuration file")
	rootCmd.PersistentFlags().StringVarP(&libraryPath, "library", "l", "", "material library document (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// loadLibrary decodes the configured library document.
func loadLibrary() (*memhost.Host, error) {
	h, err := memhost.DecodeFile(cfg.Library, nil)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("library %s not found, run texmat init first: %w", cfg.Library, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load library %s: %w", cfg.Library, err)
	}

	logger.Debug("library loaded",
		zap.String("path", cfg.Library),
		zap.Int("graphs", len(h.Graphs())),
		zap.Int("patterns", len(h.Patterns())))

	return h, nil
}

// saveLibrary writes h back to the configured library document.
func saveLibrary(h *memhost.Host) error {
	if err := memhost.EncodeFile(cfg.Library, h, nil); err != nil {
		return fmt.Errorf("save library %s: %w", cfg.Library, err)
	}
	logger.Debug("library saved", zap.String("path", cfg.Library))

	return nil
}

// lookupGraph finds a material by name, case-insensitively.
func lookupGraph(h texmat.Host, name string) (texmat.Graph, error) {
	if g, ok := h.Lookup(name); ok {
		return g, nil
	}
	for _, g := range h.Graphs() {
		if strings.EqualFold(g.Name(), name) {
			return g, nil
		}
	}

	return nil, fmt.Errorf("material %q not found in %s", name, cfg.Library)
}

// printYAML writes v as a YAML document.
func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
