package main

import (
	"context"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan <id-or-name>",
	Short: "Render a module and export a plan-style summary",
	Long: `Render a module and export a plan-style summary.

The output lists each resource the rendered template would create,
followed by the full rendered HCL.

Examples:
  terramod plan aws_rds_instance --var identifier=main-db --var db_name=app --var username=admin --var password=secret
  terramod plan aws_s3_bucket --var bucket_name=my-data --out plan.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

var (
	planVars []string
	planOut  string
)

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringArrayVar(&planVars, "var", nil, "variable value as name=value (repeatable)")
	planCmd.Flags().StringVar(&planOut, "out", "", "write plan to file instead of stdout")
}

func runPlan(cmd *cobra.Command, args []string) error {
	values, err := parseVarFlags(planVars)
	if err != nil {
		return err
	}

	reg, cleanup, err := newRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	plan, err := reg.ExportPlan(context.Background(), args[0], values)
	if err != nil {
		return err
	}
	return writeOutput(planOut, plan)
}
