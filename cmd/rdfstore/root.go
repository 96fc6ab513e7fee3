package main

import "github.com/spf13/cobra"

// RootOptions holds flags shared across every subcommand. Currently empty:
// every command takes its own positional database/model/query arguments,
// but the struct is kept (mirroring the cobra root-options convention)
// since a --format or --verbose flag is a natural later addition.
type RootOptions struct{}

func newRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "rdfstore",
		Short: "A minimal RDF triple-store toolkit",
		Long:  "Import, export and query RDF triples held in a relational store, over Turtle and a SPARQL SELECT subset.",
	}

	cmd.AddCommand(newCountTriplesCommand(opts))
	cmd.AddCommand(newImportCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newSparqlCommand(opts))

	return cmd
}
