package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"

	"github.com/blackroad/terramod/adapters/clock"
	"github.com/blackroad/terramod/adapters/idgen"
	"github.com/blackroad/terramod/adapters/memory"
	"github.com/blackroad/terramod/adapters/sqlite"
	"github.com/blackroad/terramod/app"
	"github.com/blackroad/terramod/config"
	"github.com/blackroad/terramod/domain/variable"
	"github.com/blackroad/terramod/ports"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "terramod",
	Short: "Terraform module registry with template rendering and static validation",
	Long: `Terramod is a self-hosted Terraform module registry.

It stores parameterized HCL templates, renders them with typed variable
values, and statically validates template text without parsing full HCL.

Quick start:
  terramod serve              # Start the HTTP registry server
  terramod seed               # Load the built-in module catalog

Working with modules:
  terramod modules list
  terramod generate aws_ec2_instance --var name=web --var ami_id=ami-123 --var subnet_id=subnet-1
  terramod validate main.tf
  terramod docs aws_s3_bucket`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "terramod.yaml", "config file path")
}

// loadConfig reads the config file if it exists, falling back to defaults
// plus environment overrides.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			return config.Load(cfgFile)
		}
	}
	return config.Default(), nil
}

// newRegistry builds a registry service for one-shot CLI commands. The
// returned cleanup function closes the underlying store.
func newRegistry() (*app.Registry, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

	var (
		store   ports.ModuleStore
		cleanup func()
	)
	switch cfg.Database.Driver {
	case "memory":
		store = memory.NewModuleStore()
		cleanup = func() {}
	default:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		store = sqlite.NewModuleStore(db)
		cleanup = func() { db.Close() }
	}

	reg := app.NewRegistry(store, clock.Real{}, idgen.UUID{}, logger, app.RegistryConfig{})
	return reg, cleanup, nil
}

// parseVarFlags turns repeated --var name=value flags into typed values.
func parseVarFlags(flags []string) (map[string]cty.Value, error) {
	values := make(map[string]cty.Value, len(flags))
	for _, f := range flags {
		name, raw, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q (expected name=value)", f)
		}
		values[name] = variable.ParseCLIValue(raw)
	}
	return values, nil
}

// writeOutput writes to a file when --out is given, stdout otherwise.
func writeOutput(out, content string) error {
	if out == "" {
		fmt.Print(content)
		if !strings.HasSuffix(content, "\n") {
			fmt.Println()
		}
		return nil
	}
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("Written to %s\n", out)
	return nil
}
