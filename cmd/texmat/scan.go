package main

import (
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [folder]",
	Short: "Classify the texture images of a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := scanFolder(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return printYAML(cmd.OutOrStdout(), files)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
