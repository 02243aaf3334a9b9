// Package variable describes a template's declared inputs and outputs.
// Declarations are immutable value types; values are cty values so the
// renderer's textual encoding stays exhaustive over every declared kind.
package variable

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Declaration describes a single declared template variable.
// Default is nil when the variable has no default.
type Declaration struct {
	Name        string
	Kind        Kind
	Description string
	Default     *cty.Value
	Required    bool
	Sensitive   bool
}

// Output describes a declared module output. The value expression is opaque
// text; it is never evaluated.
type Output struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	ValueExpression string `json:"value_expression"`
	Sensitive       bool   `json:"sensitive,omitempty"`
}

// declarationJSON is the wire/storage form of a Declaration. Defaults are
// carried as raw JSON and typed by implication on decode.
type declarationJSON struct {
	Name        string          `json:"name"`
	Kind        Kind            `json:"kind"`
	Description string          `json:"description,omitempty"`
	Default     json.RawMessage `json:"default,omitempty"`
	Required    bool            `json:"required"`
	Sensitive   bool            `json:"sensitive,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (d Declaration) MarshalJSON() ([]byte, error) {
	out := declarationJSON{
		Name:        d.Name,
		Kind:        d.Kind,
		Description: d.Description,
		Required:    d.Required,
		Sensitive:   d.Sensitive,
	}
	if d.Default != nil {
		raw, err := ctyjson.Marshal(*d.Default, d.Default.Type())
		if err != nil {
			return nil, fmt.Errorf("encode default for %q: %w", d.Name, err)
		}
		out.Default = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Declaration) UnmarshalJSON(data []byte) error {
	var in declarationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	d.Name = in.Name
	d.Kind = in.Kind
	d.Description = in.Description
	d.Required = in.Required
	d.Sensitive = in.Sensitive
	d.Default = nil
	if len(in.Default) > 0 && string(in.Default) != "null" {
		v, err := ParseJSONValue(in.Default)
		if err != nil {
			return fmt.Errorf("decode default for %q: %w", in.Name, err)
		}
		d.Default = &v
	}
	return nil
}

// HasDefault reports whether the declaration carries a default value.
func (d Declaration) HasDefault() bool {
	return d.Default != nil
}

// HCL emits the canonical variable block for the declaration.
func (d Declaration) HCL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "variable %q {\n", d.Name)
	fmt.Fprintf(&b, "  type        = %s\n", d.Kind)
	if d.Description != "" {
		fmt.Fprintf(&b, "  description = %q\n", d.Description)
	}
	if d.Default != nil {
		fmt.Fprintf(&b, "  default     = %s\n", EncodeHCL(*d.Default))
	}
	if d.Sensitive {
		b.WriteString("  sensitive   = true\n")
	}
	b.WriteString("}")
	return b.String()
}

// HCL emits the canonical output block for the output.
func (o Output) HCL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "output %q {\n", o.Name)
	if o.Description != "" {
		fmt.Fprintf(&b, "  description = %q\n", o.Description)
	}
	fmt.Fprintf(&b, "  value       = %s\n", o.ValueExpression)
	if o.Sensitive {
		b.WriteString("  sensitive   = true\n")
	}
	b.WriteString("}")
	return b.String()
}

// ValidateDeclarations checks name uniqueness and kind validity.
// This is a PURE function.
func ValidateDeclarations(decls []Declaration) error {
	seen := make(map[string]bool, len(decls))
	for _, d := range decls {
		if d.Name == "" {
			return fmt.Errorf("variable declaration with empty name")
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate variable declaration %q", d.Name)
		}
		seen[d.Name] = true
		if _, err := ParseKind(string(d.Kind)); err != nil {
			return fmt.Errorf("variable %q: %w", d.Name, err)
		}
	}
	return nil
}

// ValidateOutputs checks output name uniqueness.
// This is a PURE function.
func ValidateOutputs(outputs []Output) error {
	seen := make(map[string]bool, len(outputs))
	for _, o := range outputs {
		if o.Name == "" {
			return fmt.Errorf("output declaration with empty name")
		}
		if seen[o.Name] {
			return fmt.Errorf("duplicate output declaration %q", o.Name)
		}
		seen[o.Name] = true
	}
	return nil
}
