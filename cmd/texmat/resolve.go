package main

import (
	"github.com/spf13/cobra"
)

var resolveFlags transformFlags

var resolveCmd = &cobra.Command{
	Use:   "resolve [folder]",
	Short: "Pick one texture per channel and print the assignment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := assignFolder(cmd.Context(), cmd, args[0], &resolveFlags)
		if err != nil {
			return err
		}

		return printYAML(cmd.OutOrStdout(), a)
	},
}

func init() {
	resolveFlags.register(resolveCmd)
	rootCmd.AddCommand(resolveCmd)
}
