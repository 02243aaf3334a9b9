package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search modules by name, description, provider, or tags",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := newRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	query := strings.Join(args, " ")
	mods, err := reg.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(mods) == 0 {
		fmt.Printf("No modules matching %q.\n", query)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPROVIDER\tVERSION\tDESCRIPTION")
	fmt.Fprintln(w, "----\t--------\t-------\t-----------")
	for _, m := range mods {
		desc := m.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Name, m.Provider, m.Version, desc)
	}
	w.Flush()
	return nil
}
