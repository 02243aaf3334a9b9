package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in module catalog",
	Long: `Load the built-in module catalog.

Seeding is a no-op when the store already contains modules, so it is
safe to run repeatedly.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := newRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := reg.SeedBuiltins(context.Background())
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Println("Store is not empty; nothing seeded.")
		return nil
	}
	fmt.Printf("Seeded %d built-in modules.\n", n)
	return nil
}
