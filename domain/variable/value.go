package variable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Kind is the declared type of a template variable.
type Kind string

const (
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "bool"
	KindList   Kind = "list"
	KindMap    Kind = "map"
	KindObject Kind = "object"
	KindAny    Kind = "any"
)

// Kinds lists every valid variable kind.
var Kinds = []Kind{KindString, KindNumber, KindBool, KindList, KindMap, KindObject, KindAny}

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if s == string(k) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown variable kind %q", s)
}

// CtyType returns the cty type constraint for the kind.
// Collection kinds carry dynamic element types; "any" is fully dynamic.
func (k Kind) CtyType() cty.Type {
	switch k {
	case KindString:
		return cty.String
	case KindNumber:
		return cty.Number
	case KindBool:
		return cty.Bool
	case KindList:
		return cty.List(cty.DynamicPseudoType)
	case KindMap:
		return cty.Map(cty.DynamicPseudoType)
	case KindObject:
		return cty.EmptyObject
	default:
		return cty.DynamicPseudoType
	}
}

// ConvertForKind checks that a value conforms to a declared kind.
// Primitive kinds are converted (so the number 1 satisfies a string variable
// the way it would in a tfvars file); collection kinds are shape-checked but
// their element values are kept as supplied.
func ConvertForKind(v cty.Value, k Kind) (cty.Value, error) {
	if v.IsNull() {
		return v, nil
	}
	t := v.Type()
	switch k {
	case KindString, KindNumber, KindBool:
		out, err := convert.Convert(v, k.CtyType())
		if err != nil {
			return cty.NilVal, fmt.Errorf("value of type %s is not valid for kind %s", t.FriendlyName(), k)
		}
		return out, nil
	case KindList:
		if t.IsListType() || t.IsTupleType() || t.IsSetType() {
			return v, nil
		}
		return cty.NilVal, fmt.Errorf("value of type %s is not valid for kind list", t.FriendlyName())
	case KindMap:
		if t.IsMapType() || t.IsObjectType() {
			return v, nil
		}
		return cty.NilVal, fmt.Errorf("value of type %s is not valid for kind map", t.FriendlyName())
	case KindObject:
		if t.IsObjectType() || t.IsMapType() {
			return v, nil
		}
		return cty.NilVal, fmt.Errorf("value of type %s is not valid for kind object", t.FriendlyName())
	default:
		return v, nil
	}
}

// EncodeText renders a value in the registry's stable textual form, the form
// substituted into templates:
//
//	string  -> raw text (no quotes)
//	number  -> shortest decimal form
//	bool    -> true / false
//	null    -> null
//	list    -> [a, b, c]
//	map     -> {k1 = v1, k2 = v2}  (keys sorted)
//
// The encoding is total over every kind and deterministic for identical input.
// This is a PURE function.
func EncodeText(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString()
	case t == cty.Number:
		return v.AsBigFloat().Text('f', -1)
	case t == cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	case t.IsListType() || t.IsSetType() || t.IsTupleType():
		var parts []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			parts = append(parts, EncodeText(ev))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case t.IsMapType() || t.IsObjectType():
		vals := v.AsValueMap()
		keys := make([]string, 0, len(vals))
		for k := range vals {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+" = "+EncodeText(vals[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "null"
	}
}

// EncodeHCL renders a value as an HCL expression (strings quoted). Used when
// emitting variable and output declaration blocks.
func EncodeHCL(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	t := v.Type()
	switch {
	case t == cty.String:
		return fmt.Sprintf("%q", v.AsString())
	case t == cty.Number, t == cty.Bool:
		return EncodeText(v)
	case t.IsListType() || t.IsSetType() || t.IsTupleType():
		var parts []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			parts = append(parts, EncodeHCL(ev))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case t.IsMapType() || t.IsObjectType():
		vals := v.AsValueMap()
		keys := make([]string, 0, len(vals))
		for k := range vals {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+" = "+EncodeHCL(vals[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "null"
	}
}

// ParseCLIValue interprets a value given on the command line or in a flat
// key=value form. JSON syntax yields the implied typed value (20 is a number,
// true a bool, [1,2] a list); anything that is not valid JSON is a string.
func ParseCLIValue(raw string) cty.Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		if t, err := ctyjson.ImpliedType([]byte(trimmed)); err == nil {
			if v, err := ctyjson.Unmarshal([]byte(trimmed), t); err == nil {
				return v
			}
		}
	}
	return cty.StringVal(raw)
}

// ParseJSONValue decodes a JSON document into a typed value.
func ParseJSONValue(raw []byte) (cty.Value, error) {
	t, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("decode value: %w", err)
	}
	v, err := ctyjson.Unmarshal(raw, t)
	if err != nil {
		return cty.NilVal, fmt.Errorf("decode value: %w", err)
	}
	return v, nil
}
