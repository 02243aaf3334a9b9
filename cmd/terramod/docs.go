package main

import (
	"context"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs <id-or-name>",
	Short: "Generate Markdown documentation for a module",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocs,
}

var docsOut string

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().StringVar(&docsOut, "out", "", "write Markdown to file instead of stdout")
}

func runDocs(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := newRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	md, err := reg.Docs(context.Background(), args[0])
	if err != nil {
		return err
	}
	return writeOutput(docsOut, md)
}
