package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/woozymasta/texmat"
)

var noopFlags transformFlags

// errChanged makes the process exit with status 2 without an error message.
var errChanged = errors.New("changed")

var noopCmd = &cobra.Command{
	Use:   "noop [folder] [material]",
	Short: "Report whether applying a folder would change a material's bitmaps",
	Long: `Exits with status 0 and prints "unchanged" when every channel bitmap of
the material already matches the folder, and exits with status 2 and prints
"changed" otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := assignFolder(cmd.Context(), cmd, args[0], &noopFlags)
		if err != nil {
			return err
		}
		h, err := loadLibrary()
		if err != nil {
			return err
		}
		g, err := lookupGraph(h, args[1])
		if err != nil {
			return err
		}

		if texmat.IsNoOp(g, a.Paths()) {
			cmd.Println("unchanged")
			return nil
		}
		cmd.Println("changed")

		return errChanged
	},
}

func init() {
	noopFlags.register(noopCmd)
	rootCmd.AddCommand(noopCmd)
}
