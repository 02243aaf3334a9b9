package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackroad/terramod/domain/variable"
)

// Docs generates Markdown documentation for a module: metadata header,
// variable and output tables, the raw template, examples, and tags.
func (r *Registry) Docs(ctx context.Context, idOrName string) (string, error) {
	m, err := r.store.Get(ctx, idOrName)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Name)
	fmt.Fprintf(&b, "> **Provider:** `%s` | **Resource:** `%s` | **Version:** `%s`\n\n",
		m.Provider, m.ResourceType, m.Version)
	if m.Description != "" {
		b.WriteString(m.Description + "\n\n")
	}

	b.WriteString("## Variables\n\n")
	if len(m.Variables) == 0 {
		b.WriteString("_None._\n")
	} else {
		b.WriteString("| Name | Type | Required | Sensitive | Default | Description |\n")
		b.WriteString("| ---- | ---- | :------: | :-------: | ------- | ----------- |\n")
		for _, v := range m.Variables {
			def := "-"
			if v.Default != nil {
				def = "`" + variable.EncodeHCL(*v.Default) + "`"
			}
			fmt.Fprintf(&b, "| `%s` | `%s` | %s | %s | %s | %s |\n",
				v.Name, v.Kind, yesNo(v.Required), yesNo(v.Sensitive), def, v.Description)
		}
	}

	b.WriteString("\n## Outputs\n\n")
	if len(m.Outputs) == 0 {
		b.WriteString("_None._\n")
	} else {
		b.WriteString("| Name | Sensitive | Description |\n")
		b.WriteString("| ---- | :-------: | ----------- |\n")
		for _, o := range m.Outputs {
			fmt.Fprintf(&b, "| `%s` | %s | %s |\n", o.Name, yesNo(o.Sensitive), o.Description)
		}
	}

	b.WriteString("\n## Template\n\n```hcl\n")
	b.WriteString(strings.TrimRight(m.Template, "\n"))
	b.WriteString("\n```\n")

	if len(m.Examples) > 0 {
		b.WriteString("\n## Examples\n")
		for _, ex := range m.Examples {
			fmt.Fprintf(&b, "\n### %s\n\n", ex.Title)
			if ex.Description != "" {
				b.WriteString(ex.Description + "\n\n")
			}
			b.WriteString("```hcl\n" + strings.TrimRight(ex.Code, "\n") + "\n```\n")
		}
	}

	if len(m.Tags) > 0 {
		b.WriteString("\n## Tags\n\n")
		tagged := make([]string, len(m.Tags))
		for i, t := range m.Tags {
			tagged[i] = "`" + t + "`"
		}
		b.WriteString(strings.Join(tagged, ", ") + "\n")
	}

	b.WriteString("\n## Metadata\n\n")
	fmt.Fprintf(&b, "- **ID:** `%s`\n", m.ID)
	fmt.Fprintf(&b, "- **Created:** %s\n", m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(&b, "- **Downloads:** %d\n", m.DownloadCount)

	return b.String(), nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
