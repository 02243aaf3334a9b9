package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Statically validate HCL template text",
	Long: `Statically validate HCL template text.

Checks delimiter balance, interpolation namespaces, resource block
labels, and block presence without parsing full HCL. Reads from the
given file, or from stdin when no file is given.

Examples:
  terramod validate main.tf
  cat main.tf | terramod validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	reg, cleanup, err := newRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	res := reg.Validate(string(data))

	for _, e := range res.Errors {
		fmt.Printf("error:   %s\n", e)
	}
	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w)
	}

	if !res.Valid {
		return fmt.Errorf("validation failed with %d error(s)", len(res.Errors))
	}
	if len(res.Warnings) == 0 {
		fmt.Println("Template is valid.")
	} else {
		fmt.Printf("Template is valid with %d warning(s).\n", len(res.Warnings))
	}
	return nil
}
