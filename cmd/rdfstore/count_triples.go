package main

import (
	"fmt"
	"os"

	"github.com/quiesnet/rdfstore/internal/turtle"
	"github.com/spf13/cobra"
)

func newCountTriplesCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "count-triples <file>",
		Short:         "Parse a Turtle document and print its triple count",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			count := 0
			p := turtle.NewParser(f)
			if err := p.Parse(func(turtle.Triple) error {
				count++
				return nil
			}); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}
}
