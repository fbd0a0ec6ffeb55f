package main

import (
	"github.com/spf13/cobra"
	"github.com/woozymasta/texmat"
)

var readCmd = &cobra.Command{
	Use:   "read [material]",
	Short: "Print the textures, tint, transform and tiles of a material",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadLibrary()
		if err != nil {
			return err
		}
		g, err := lookupGraph(h, args[0])
		if err != nil {
			return err
		}

		rb, err := texmat.Read(g, &texmat.ReadOptions{Unit: h.Unit()})
		if err != nil {
			return err
		}

		return printYAML(cmd.OutOrStdout(), rb)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
