package main

import (
	"fmt"
	"os"

	"github.com/quiesnet/rdfstore/internal/ops"
	"github.com/quiesnet/rdfstore/internal/store"
	"github.com/spf13/cobra"
)

func newImportCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "import <database> <model-uri> <model-path>",
		Short:         "Import a Turtle document into a model, applying the minimal diff",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, modelIRI, modelPath := args[0], args[1], args[2]

			st, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			f, err := os.Open(modelPath)
			if err != nil {
				return fmt.Errorf("open %s: %w", modelPath, err)
			}
			defer f.Close()

			result, err := ops.Import(cmd.Context(), st, modelIRI, f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "added %d, removed %d triples\n", result.Added, result.Removed)
			return nil
		},
	}
}
