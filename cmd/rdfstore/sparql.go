package main

import (
	"fmt"

	"github.com/quiesnet/rdfstore/internal/ops"
	"github.com/quiesnet/rdfstore/internal/store"
	"github.com/quiesnet/rdfstore/internal/xmlresult"
	"github.com/spf13/cobra"
)

func newSparqlCommand(root *RootOptions) *cobra.Command {
	var printSQL bool

	cmd := &cobra.Command{
		Use:           "sparql <database> <query>",
		Short:         "Run a SPARQL SELECT query against a model, or print its compiled SQL",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, queryText := args[0], args[1]

			st, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			if printSQL {
				_, sqlText, _, _, err := ops.Compile(st, queryText)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), sqlText)
				return nil
			}

			projection, rows, err := ops.Query(cmd.Context(), st, queryText)
			if err != nil {
				return xmlresult.WriteError(cmd.OutOrStdout(), err.Error())
			}
			return xmlresult.WriteResults(cmd.OutOrStdout(), projection, rows)
		},
	}

	cmd.Flags().BoolVarP(&printSQL, "sql", "s", false, "print the compiled SQL instead of executing the query")
	return cmd
}
