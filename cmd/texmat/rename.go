package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renameCmd = &cobra.Command{
	Use:   "rename [material] [new-name]",
	Short: "Rename a material",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadLibrary()
		if err != nil {
			return err
		}
		g, err := lookupGraph(h, args[0])
		if err != nil {
			return err
		}
		if err := h.Rename(g, args[1]); err != nil {
			return err
		}
		logger.Info("material renamed", zap.String("from", args[0]), zap.String("to", args[1]))

		return saveLibrary(h)
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
