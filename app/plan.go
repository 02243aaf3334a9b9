package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/blackroad/terramod/domain/hcl"
)

// ExportPlan renders a module and formats the result as a plan-style
// summary: one "+ resource" entry per resource block in the rendered text,
// followed by the full rendered HCL. Counts as a download, like Generate.
func (r *Registry) ExportPlan(ctx context.Context, idOrName string, values map[string]cty.Value) (string, error) {
	m, err := r.store.Get(ctx, idOrName)
	if err != nil {
		return "", err
	}
	rendered, err := r.Generate(ctx, idOrName, values)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# Terraform Plan Export\n")
	fmt.Fprintf(&b, "# Module   : %s v%s\n", m.Name, m.Version)
	fmt.Fprintf(&b, "# Provider : %s\n", m.Provider)
	fmt.Fprintf(&b, "# Generated: %s\n", r.clock.Now().UTC().Format("2006-01-02T15:04:05Z"))
	b.WriteString("#\n")
	b.WriteString("# This plan shows what Terraform would create or modify.\n")
	b.WriteString("# Review carefully before applying.\n\n")
	fmt.Fprintf(&b, "# Resource: %s\n\n", m.ResourceType)

	blocks := hcl.ResourceBlocks(rendered)
	if len(blocks) > 0 {
		b.WriteString("Changes to be applied:\n\n")
		for _, blk := range blocks {
			fmt.Fprintf(&b, "  + resource %q %q {\n", blk.Type, blk.Name)
			for _, line := range strings.Split(strings.TrimSpace(blk.Body), "\n") {
				trimmed := strings.TrimSpace(line)
				if trimmed == "" {
					b.WriteString("\n")
					continue
				}
				b.WriteString("      " + trimmed + "\n")
			}
			b.WriteString("  }\n\n")
		}
		fmt.Fprintf(&b, "Plan: %d to add, 0 to change, 0 to destroy.\n", len(blocks))
	} else {
		b.WriteString("# (no resource blocks detected in rendered template)\n")
	}

	b.WriteString("\n# Rendered HCL\n\n")
	b.WriteString(rendered)
	return b.String(), nil
}
