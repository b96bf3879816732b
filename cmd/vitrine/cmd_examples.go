package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/vitrine/internal/source"
)

var examplesCmd = &cobra.Command{
	Use:   "examples [NAME]",
	Short: "List the bundled examples or print one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExamples,
}

func runExamples(cmd *cobra.Command, args []string) error {
	gallery := source.NewGallery()

	if len(args) == 1 {
		src, err := gallery.Get(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Fprint(cmd.OutOrStdout(), src)
		return nil
	}

	names, err := gallery.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
