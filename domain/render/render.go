// Package render substitutes declared variables into template text.
// Rendering is pure: identical input always yields identical output, and the
// template and declarations are never mutated.
package render

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/blackroad/terramod/domain/hcl"
	"github.com/blackroad/terramod/domain/variable"
)

// MissingRequiredVariableError reports a required variable with no
// user-supplied value and no default.
type MissingRequiredVariableError struct {
	Name string
}

func (e *MissingRequiredVariableError) Error() string {
	return fmt.Sprintf("missing required variable %q", e.Name)
}

// UndeclaredReferenceError reports a ${var.x} token whose identifier is not
// among the template's declared variables.
type UndeclaredReferenceError struct {
	Name string
}

func (e *UndeclaredReferenceError) Error() string {
	return fmt.Sprintf("template references undeclared variable %q", e.Name)
}

// EffectiveValues resolves the value each declared variable renders with:
// the user-supplied value when present, else the declared default.
//
// A variable flagged required is satisfied by its default even when the
// caller supplies nothing; required acts as an unconditional presence check
// only for declarations without a default. Registry compatibility quirk,
// kept on purpose.
// This is a PURE function.
func EffectiveValues(decls []variable.Declaration, userValues map[string]cty.Value) (map[string]cty.Value, error) {
	effective := make(map[string]cty.Value, len(decls))
	for _, d := range decls {
		if v, ok := userValues[d.Name]; ok {
			conv, err := variable.ConvertForKind(v, d.Kind)
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", d.Name, err)
			}
			effective[d.Name] = conv
			continue
		}
		if d.Default != nil {
			effective[d.Name] = *d.Default
			continue
		}
		if d.Required {
			return nil, &MissingRequiredVariableError{Name: d.Name}
		}
		// Optional with no default: undefined, token left untouched.
	}
	return effective, nil
}

// Render substitutes every ${var.<identifier>} token in template with the
// textual encoding of the variable's effective value. Tokens in other
// namespaces (local., module., data.) and escaped $${ sequences pass through
// byte-for-byte. Both error cases are terminal: no partial output is
// returned.
// This is a PURE function.
func Render(template string, decls []variable.Declaration, userValues map[string]cty.Value) (string, error) {
	effective, err := EffectiveValues(decls, userValues)
	if err != nil {
		return "", err
	}

	declared := make(map[string]bool, len(decls))
	for _, d := range decls {
		declared[d.Name] = true
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		c := template[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}

		// A trailing "${" opens an interpolation only when the dollar run
		// has odd length; even runs are the $${ escape and pass through.
		j := i
		for j < len(template) && template[j] == '$' {
			j++
		}
		run := j - i
		if j < len(template) && template[j] == '{' && run%2 == 1 {
			if end, ok := hcl.MatchBrace(template, j); ok {
				expr := template[j+1 : end]
				if name, ok := varReference(expr); ok {
					if !declared[name] {
						return "", &UndeclaredReferenceError{Name: name}
					}
					if v, ok := effective[name]; ok {
						// Dollars before the interpolation's own "$" are
						// literal text and pass through unchanged.
						b.WriteString(template[i : j-1])
						b.WriteString(variable.EncodeText(v))
						i = end + 1
						continue
					}
				}
			}
		}

		b.WriteString(template[i:j])
		i = j
	}

	return b.String(), nil
}

// varReference reports whether expr has the exact shape var.<identifier>.
func varReference(expr string) (string, bool) {
	rest, ok := strings.CutPrefix(expr, "var.")
	if !ok {
		return "", false
	}
	if !hcl.IsIdentifier(rest) {
		return "", false
	}
	return rest, true
}
