package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "ragprep",
		Short: "Prepare parsed document elements for a RAG pipeline",
	}

	root.AddCommand(describeCmd())
	root.AddCommand(partitionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
