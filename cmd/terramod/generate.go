package main

import (
	"context"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <id-or-name>",
	Short: "Render a module template with variable values",
	Long: `Render a module template with variable values.

Values are given as repeated --var name=value flags. JSON syntax yields
typed values (numbers, bools, lists, maps); anything else is a string.

Examples:
  terramod generate aws_ec2_instance --var name=web --var ami_id=ami-123 --var subnet_id=subnet-1
  terramod generate kubernetes_deployment --var name=api --var image=api:1.2 --var replicas=3
  terramod generate aws_s3_bucket --var bucket_name=my-data --out bucket.tf`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	generateVars []string
	generateOut  string
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringArrayVar(&generateVars, "var", nil, "variable value as name=value (repeatable)")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "write rendered HCL to file instead of stdout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	values, err := parseVarFlags(generateVars)
	if err != nil {
		return err
	}

	reg, cleanup, err := newRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	rendered, err := reg.Generate(context.Background(), args[0], values)
	if err != nil {
		return err
	}
	return writeOutput(generateOut, rendered)
}
