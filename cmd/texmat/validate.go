package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/woozymasta/texmat"
)

var (
	validateFlags transformFlags
	validateSets  []string
)

var validateCmd = &cobra.Command{
	Use:   "validate [folder]",
	Short: "Check the resolved assignment of a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := assignFolder(cmd.Context(), cmd, args[0], &validateFlags)
		if err != nil {
			return err
		}
		if err := applyOverrides(a, validateSets); err != nil {
			return err
		}

		issues := texmat.ValidateAssignments(a, cfg.ValidateOptions())
		for _, is := range issues {
			cmd.Println(is.String())
		}
		if texmat.HasErrors(issues) {
			return fmt.Errorf("%s: assignment has errors", args[0])
		}
		if len(issues) == 0 {
			cmd.Println("ok")
		}

		return nil
	},
}

func init() {
	validateFlags.register(validateCmd)
	validateCmd.Flags().StringArrayVar(&validateSets, "set", nil, "override a channel as channel=path (empty path clears)")
	rootCmd.AddCommand(validateCmd)
}
