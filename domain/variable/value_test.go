package variable

import (
	"testing"

	"github.com/zclconf/go-cty/cty"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		if err != nil {
			t.Errorf("ParseKind(%q): %v", k, err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %q", k, got)
		}
	}

	if _, err := ParseKind("integer"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestEncodeText(t *testing.T) {
	tests := []struct {
		name string
		v    cty.Value
		want string
	}{
		{"string raw", cty.StringVal("web-server"), "web-server"},
		{"string with spaces", cty.StringVal("hello world"), "hello world"},
		{"integer", cty.NumberIntVal(20), "20"},
		{"float shortest form", cty.NumberFloatVal(2.5), "2.5"},
		{"negative", cty.NumberIntVal(-3), "-3"},
		{"bool true", cty.True, "true"},
		{"bool false", cty.False, "false"},
		{"null", cty.NullVal(cty.String), "null"},
		{"empty list", cty.ListValEmpty(cty.String), "[]"},
		{
			"list",
			cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)}),
			"[1, 2]",
		},
		{
			"map keys sorted",
			cty.ObjectVal(map[string]cty.Value{
				"zone": cty.StringVal("b"),
				"app":  cty.StringVal("api"),
				"env":  cty.StringVal("prod"),
			}),
			"{app = api, env = prod, zone = b}",
		},
		{
			"nested",
			cty.ObjectVal(map[string]cty.Value{
				"ports": cty.TupleVal([]cty.Value{cty.NumberIntVal(80), cty.NumberIntVal(443)}),
			}),
			"{ports = [80, 443]}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeText(tt.v); got != tt.want {
				t.Errorf("EncodeText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeHCL_QuotesStrings(t *testing.T) {
	if got, want := EncodeHCL(cty.StringVal("t3.micro")), `"t3.micro"`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got, want := EncodeHCL(cty.NumberIntVal(7)), "7"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	got := EncodeHCL(cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}))
	if want := `["a", "b"]`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestConvertForKind(t *testing.T) {
	t.Run("number from string", func(t *testing.T) {
		v, err := ConvertForKind(cty.StringVal("42"), KindNumber)
		if err != nil {
			t.Fatalf("ConvertForKind: %v", err)
		}
		if !v.RawEquals(cty.NumberIntVal(42)) {
			t.Errorf("got %#v", v)
		}
	})

	t.Run("string from number", func(t *testing.T) {
		v, err := ConvertForKind(cty.NumberIntVal(8080), KindString)
		if err != nil {
			t.Fatalf("ConvertForKind: %v", err)
		}
		if v.AsString() != "8080" {
			t.Errorf("got %q", v.AsString())
		}
	})

	t.Run("number rejects text", func(t *testing.T) {
		if _, err := ConvertForKind(cty.StringVal("many"), KindNumber); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("list accepts tuple", func(t *testing.T) {
		in := cty.TupleVal([]cty.Value{cty.NumberIntVal(1)})
		v, err := ConvertForKind(in, KindList)
		if err != nil {
			t.Fatalf("ConvertForKind: %v", err)
		}
		if !v.RawEquals(in) {
			t.Error("list value changed by shape check")
		}
	})

	t.Run("list rejects scalar", func(t *testing.T) {
		if _, err := ConvertForKind(cty.StringVal("x"), KindList); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("map accepts object", func(t *testing.T) {
		in := cty.ObjectVal(map[string]cty.Value{"k": cty.StringVal("v")})
		if _, err := ConvertForKind(in, KindMap); err != nil {
			t.Errorf("ConvertForKind: %v", err)
		}
	})

	t.Run("any accepts everything", func(t *testing.T) {
		for _, v := range []cty.Value{cty.StringVal("x"), cty.NumberIntVal(1), cty.True} {
			if _, err := ConvertForKind(v, KindAny); err != nil {
				t.Errorf("ConvertForKind(%#v, any): %v", v, err)
			}
		}
	})

	t.Run("null passes through", func(t *testing.T) {
		v, err := ConvertForKind(cty.NullVal(cty.String), KindNumber)
		if err != nil {
			t.Fatalf("ConvertForKind: %v", err)
		}
		if !v.IsNull() {
			t.Error("expected null")
		}
	})
}

func TestParseCLIValue(t *testing.T) {
	tests := []struct {
		raw  string
		want cty.Value
	}{
		{"20", cty.NumberIntVal(20)},
		{"true", cty.True},
		{"hello", cty.StringVal("hello")},
		{`"quoted"`, cty.StringVal("quoted")},
		{"ami-0abc", cty.StringVal("ami-0abc")},
		{"", cty.StringVal("")},
	}
	for _, tt := range tests {
		got := ParseCLIValue(tt.raw)
		if !got.RawEquals(tt.want) {
			t.Errorf("ParseCLIValue(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}

	list := ParseCLIValue("[1, 2]")
	if !list.Type().IsTupleType() || list.LengthInt() != 2 {
		t.Errorf("ParseCLIValue list = %#v", list)
	}
}

func TestParseJSONValue(t *testing.T) {
	v, err := ParseJSONValue([]byte(`{"replicas": 3, "name": "api"}`))
	if err != nil {
		t.Fatalf("ParseJSONValue: %v", err)
	}
	if !v.Type().IsObjectType() {
		t.Fatalf("expected object, got %s", v.Type().FriendlyName())
	}
	if got := v.GetAttr("replicas"); !got.RawEquals(cty.NumberIntVal(3)) {
		t.Errorf("replicas = %#v", got)
	}

	if _, err := ParseJSONValue([]byte(`{not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
