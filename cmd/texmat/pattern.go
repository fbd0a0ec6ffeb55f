package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/woozymasta/texmat"
)

var (
	patternWidth  float64
	patternHeight float64
	patternDivX   int
	patternDivY   int
)

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Create or reuse a grid pattern dividing an area into cells",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if patternWidth <= 0 || patternHeight <= 0 {
			return fmt.Errorf("--width and --height must be positive")
		}

		h, err := loadLibrary()
		if err != nil {
			return err
		}
		before := len(h.Patterns())

		p, ok, err := texmat.DerivePattern(h, patternWidth, patternHeight, patternDivX, patternDivY)
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("no divisions, no pattern needed")
			return nil
		}
		if len(h.Patterns()) != before {
			if err := saveLibrary(h); err != nil {
				return err
			}
		}

		return printYAML(cmd.OutOrStdout(), p)
	},
}

func init() {
	patternCmd.Flags().Float64Var(&patternWidth, "width", 0, "area width in centimeters")
	patternCmd.Flags().Float64Var(&patternHeight, "height", 0, "area height in centimeters")
	patternCmd.Flags().IntVar(&patternDivX, "div-x", 0, "cells along X (0 = no vertical lines)")
	patternCmd.Flags().IntVar(&patternDivY, "div-y", 0, "cells along Y (0 = no horizontal lines)")
	rootCmd.AddCommand(patternCmd)
}
