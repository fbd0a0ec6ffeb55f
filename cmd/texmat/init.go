package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/woozymasta/texmat"
	"github.com/woozymasta/texmat/memhost"
	"go.uber.org/zap"
)

var (
	initUnit   string
	initForce  bool
	initLegacy bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file and a library holding a generic template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		unit := cfg.LengthUnit()
		if cmd.Flags().Changed("unit") {
			u, err := texmat.ParseUnit(initUnit)
			if err != nil {
				return err
			}
			unit = u
			cfg.Unit = string(u)
		}

		if initForce || !exists(configPath) {
			if err := cfg.Save(configPath); err != nil {
				return err
			}
			logger.Info("config written", zap.String("path", configPath))
		}

		if !initForce && exists(cfg.Library) {
			return fmt.Errorf("library %s already exists (use --force to overwrite)", cfg.Library)
		}

		h := memhost.NewWithTemplate(unit)
		if initLegacy {
			if _, err := h.AddGraph("Generic (legacy)", memhost.LegacyTemplate("Generic (legacy)")); err != nil {
				return err
			}
		}
		if err := saveLibrary(h); err != nil {
			return err
		}
		logger.Info("library written", zap.String("path", cfg.Library), zap.String("unit", string(unit)))

		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initUnit, "unit", "ft", "native length unit: ft, m or cm")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
	initCmd.Flags().BoolVar(&initLegacy, "legacy", false, "also add a template using legacy slot names")
	rootCmd.AddCommand(initCmd)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
