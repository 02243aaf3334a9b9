package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show registry statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := newRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := reg.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	fmt.Printf("Total modules: %d\n", stats.TotalModules)

	if len(stats.ByProvider) > 0 {
		fmt.Println("\nBy provider:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, pc := range stats.ByProvider {
			fmt.Fprintf(w, "  %s\t%d\n", pc.Provider, pc.Count)
		}
		w.Flush()
	}

	if len(stats.MostDownloaded) > 0 {
		fmt.Println("\nMost downloaded:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tPROVIDER\tDOWNLOADS")
		for _, d := range stats.MostDownloaded {
			fmt.Fprintf(w, "  %s\t%s\t%d\n", d.Name, d.Provider, d.Downloads)
		}
		w.Flush()
	}
	return nil
}
