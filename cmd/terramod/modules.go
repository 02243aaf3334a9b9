package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blackroad/terramod/app"
	"github.com/blackroad/terramod/domain/module"
	"github.com/blackroad/terramod/domain/variable"
	"github.com/blackroad/terramod/ports"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Manage registered modules",
	Long: `Manage registered modules.

Examples:
  terramod modules list
  terramod modules list --provider=aws
  terramod modules get aws_ec2_instance
  terramod modules register --file=module.json
  terramod modules delete aws_ec2_instance`,
}

var modulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered modules",
	RunE:  runModulesList,
}

var modulesGetCmd = &cobra.Command{
	Use:   "get <id-or-name>",
	Short: "Show a module record",
	Args:  cobra.ExactArgs(1),
	RunE:  runModulesGet,
}

var modulesRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a module from a JSON definition",
	RunE:  runModulesRegister,
}

var modulesDeleteCmd = &cobra.Command{
	Use:   "delete <id-or-name>",
	Short: "Delete a module",
	Args:  cobra.ExactArgs(1),
	RunE:  runModulesDelete,
}

var (
	listProvider     string
	listResourceType string
	registerFile     string
)

func init() {
	rootCmd.AddCommand(modulesCmd)

	modulesCmd.AddCommand(modulesListCmd)
	modulesCmd.AddCommand(modulesGetCmd)
	modulesCmd.AddCommand(modulesRegisterCmd)
	modulesCmd.AddCommand(modulesDeleteCmd)

	modulesListCmd.Flags().StringVar(&listProvider, "provider", "", "filter by provider")
	modulesListCmd.Flags().StringVar(&listResourceType, "resource-type", "", "filter by resource type")

	modulesRegisterCmd.Flags().StringVar(&registerFile, "file", "", "module definition JSON file (required)")
	modulesRegisterCmd.MarkFlagRequired("file")
}

func runModulesList(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := newRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	mods, err := reg.List(context.Background(), ports.ModuleFilter{
		Provider:     module.Provider(listProvider),
		ResourceType: listResourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to list modules: %w", err)
	}

	if len(mods) == 0 {
		fmt.Println("No modules found.")
		fmt.Println()
		fmt.Println("Seed the built-in catalog with: terramod seed")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPROVIDER\tRESOURCE\tVERSION\tDOWNLOADS")
	fmt.Fprintln(w, "----\t--------\t--------\t-------\t---------")
	for _, m := range mods {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", m.Name, m.Provider, m.ResourceType, m.Version, m.DownloadCount)
	}
	w.Flush()
	return nil
}

func runModulesGet(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := newRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	m, err := reg.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Name:         %s\n", m.Name)
	fmt.Printf("ID:           %s\n", m.ID)
	fmt.Printf("Provider:     %s\n", m.Provider)
	fmt.Printf("Resource:     %s\n", m.ResourceType)
	fmt.Printf("Version:      %s\n", m.Version)
	fmt.Printf("Downloads:    %d\n", m.DownloadCount)
	fmt.Printf("Created:      %s\n", m.CreatedAt.Format("2006-01-02 15:04:05"))
	if m.Description != "" {
		fmt.Printf("Description:  %s\n", m.Description)
	}
	if len(m.Tags) > 0 {
		fmt.Printf("Tags:         %s\n", strings.Join(m.Tags, ", "))
	}

	if len(m.Variables) > 0 {
		fmt.Println("\nVariables:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tTYPE\tREQUIRED\tDEFAULT")
		for _, d := range m.Variables {
			def := "-"
			if d.HasDefault() {
				def = variable.EncodeHCL(*d.Default)
			}
			req := "no"
			if d.Required {
				req = "yes"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", d.Name, d.Kind, req, def)
		}
		w.Flush()
	}

	fmt.Println("\nTemplate:")
	for _, line := range strings.Split(strings.TrimRight(m.Template, "\n"), "\n") {
		fmt.Println("  " + line)
	}
	return nil
}

// moduleDefinition is the JSON shape accepted by `modules register`.
type moduleDefinition struct {
	Name         string                 `json:"name"`
	Provider     string                 `json:"provider"`
	ResourceType string                 `json:"resource_type"`
	Version      string                 `json:"version"`
	Description  string                 `json:"description"`
	Template     string                 `json:"template"`
	Variables    []variable.Declaration `json:"variables"`
	Outputs      []variable.Output      `json:"outputs"`
	Examples     []module.Example       `json:"examples"`
	Tags         []string               `json:"tags"`
}

func runModulesRegister(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(registerFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", registerFile, err)
	}
	var def moduleDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("parse %s: %w", registerFile, err)
	}

	reg, cleanup, err := newRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	m, err := reg.Register(context.Background(), app.RegisterInput{
		Name:         def.Name,
		Provider:     module.Provider(def.Provider),
		ResourceType: def.ResourceType,
		Version:      def.Version,
		Description:  def.Description,
		Template:     def.Template,
		Variables:    def.Variables,
		Outputs:      def.Outputs,
		Examples:     def.Examples,
		Tags:         def.Tags,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s v%s (%s)\n", m.Name, m.Version, m.ID)
	return nil
}

func runModulesDelete(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := newRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := reg.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
