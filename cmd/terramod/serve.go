package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackroad/terramod/bootstrap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the registry HTTP server",
	Long: `Start the registry HTTP server.

The server exposes the module catalog, template rendering, static
validation, and registry statistics over a JSON API. Configuration is
read from the config file when present; SIGHUP reloads it.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}

	a, err := bootstrap.New(path)
	if err != nil {
		return err
	}
	return a.Run()
}
