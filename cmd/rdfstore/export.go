package main

import (
	"github.com/quiesnet/rdfstore/internal/ops"
	"github.com/quiesnet/rdfstore/internal/store"
	"github.com/spf13/cobra"
)

func newExportCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "export <database> <model-uri>",
		Short:         "Write a model's triples as Turtle to stdout",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, modelIRI := args[0], args[1]

			st, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			return ops.Export(cmd.Context(), st, modelIRI, cmd.OutOrStdout())
		},
	}
}
