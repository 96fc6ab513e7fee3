package main

import (
	"fmt"
	"os"

	"github.com/quiesnet/rdfstore/internal/rdflog"
)

func main() {
	rdflog.Init()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
