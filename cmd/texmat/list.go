package main

import (
	"github.com/spf13/cobra"
	"github.com/woozymasta/texmat"
)

type listing struct {
	Unit      texmat.Unit      `yaml:"unit"`
	Materials []listedMaterial `yaml:"materials"`
	Patterns  []texmat.Pattern `yaml:"patterns,omitempty"`
}

type listedMaterial struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the materials and patterns of the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadLibrary()
		if err != nil {
			return err
		}

		out := listing{Unit: h.Unit(), Patterns: h.Patterns()}
		for _, g := range h.Graphs() {
			out.Materials = append(out.Materials, listedMaterial{Name: g.Name(), Pattern: g.PatternName()})
		}

		return printYAML(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
