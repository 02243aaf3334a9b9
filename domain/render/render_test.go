// Tests for template rendering and effective value resolution.
package render

import (
	"errors"
	"testing"

	"github.com/zclconf/go-cty/cty"

	"github.com/blackroad/terramod/domain/variable"
)

func strDefault(s string) *cty.Value {
	v := cty.StringVal(s)
	return &v
}

func TestRender_SubstitutesDeclaredVariables(t *testing.T) {
	decls := []variable.Declaration{
		{Name: "name", Kind: variable.KindString, Required: true},
		{Name: "replicas", Kind: variable.KindNumber, Required: true},
	}
	values := map[string]cty.Value{
		"name":     cty.StringVal("web"),
		"replicas": cty.NumberIntVal(3),
	}

	got, err := Render(`resource "x" "${var.name}" { replicas = ${var.replicas} }`, decls, values)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `resource "x" "web" { replicas = 3 }`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_DefaultFallback(t *testing.T) {
	decls := []variable.Declaration{
		{Name: "environment", Kind: variable.KindString, Default: strDefault("prod")},
	}

	got, err := Render(`env = "${var.environment}"`, decls, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := `env = "prod"`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_UserValueOverridesDefault(t *testing.T) {
	decls := []variable.Declaration{
		{Name: "environment", Kind: variable.KindString, Default: strDefault("prod")},
	}
	values := map[string]cty.Value{"environment": cty.StringVal("staging")}

	got, err := Render(`env = "${var.environment}"`, decls, values)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := `env = "staging"`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_MissingRequiredVariable(t *testing.T) {
	decls := []variable.Declaration{
		{Name: "name", Kind: variable.KindString, Required: true},
	}

	_, err := Render(`${var.name}`, decls, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var missing *MissingRequiredVariableError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredVariableError, got %T: %v", err, err)
	}
	if missing.Name != "name" {
		t.Errorf("missing.Name = %q, want %q", missing.Name, "name")
	}
}

func TestRender_RequiredSatisfiedByDefault(t *testing.T) {
	// required acts as a presence check only for declarations without a
	// default: a required variable with a default renders the default.
	decls := []variable.Declaration{
		{Name: "size", Kind: variable.KindString, Required: true, Default: strDefault("t3.micro")},
	}

	got, err := Render(`size = "${var.size}"`, decls, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := `size = "t3.micro"`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_UndeclaredReference(t *testing.T) {
	_, err := Render(`${var.mystery}`, nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var undeclared *UndeclaredReferenceError
	if !errors.As(err, &undeclared) {
		t.Fatalf("expected UndeclaredReferenceError, got %T: %v", err, err)
	}
	if undeclared.Name != "mystery" {
		t.Errorf("undeclared.Name = %q, want %q", undeclared.Name, "mystery")
	}
}

func TestRender_OptionalWithoutDefaultLeftUntouched(t *testing.T) {
	decls := []variable.Declaration{
		{Name: "opt", Kind: variable.KindString},
	}

	got, err := Render(`value = "${var.opt}"`, decls, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := `value = "${var.opt}"`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_OtherNamespacesPassThrough(t *testing.T) {
	template := `a = ${local.x}
b = ${module.vpc.id}
c = ${data.aws_ami.ubuntu.id}`

	got, err := Render(template, nil, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != template {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestRender_EscapedInterpolation(t *testing.T) {
	decls := []variable.Declaration{
		{Name: "name", Kind: variable.KindString, Required: true},
	}
	values := map[string]cty.Value{"name": cty.StringVal("web")}

	tests := []struct {
		template string
		want     string
	}{
		// Even dollar run: the token is escaped and passes through.
		{`$${var.name}`, `$${var.name}`},
		// Odd run of three: one literal dollar pair plus a real token.
		{`$$${var.name}`, `$$web`},
		// Dollars not followed by a brace are plain text.
		{`cost = $5`, `cost = $5`},
		{`$$`, `$$`},
	}
	for _, tt := range tests {
		got, err := Render(tt.template, decls, values)
		if err != nil {
			t.Fatalf("Render(%q): %v", tt.template, err)
		}
		if got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestRender_NonIdentifierExpressionsUntouched(t *testing.T) {
	// var.a.b is an attribute path, not a plain variable token; it is not
	// substituted and not an undeclared-reference error.
	template := `x = ${var.a.b}`

	got, err := Render(template, nil, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != template {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestRender_CollectionValues(t *testing.T) {
	decls := []variable.Declaration{
		{Name: "zones", Kind: variable.KindList, Required: true},
		{Name: "labels", Kind: variable.KindMap, Required: true},
	}
	values := map[string]cty.Value{
		"zones": cty.TupleVal([]cty.Value{cty.StringVal("us-east-1a"), cty.StringVal("us-east-1b")}),
		"labels": cty.ObjectVal(map[string]cty.Value{
			"team": cty.StringVal("infra"),
			"app":  cty.StringVal("api"),
		}),
	}

	got, err := Render("zones = ${var.zones}\nlabels = ${var.labels}", decls, values)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "zones = [us-east-1a, us-east-1b]\nlabels = {app = api, team = infra}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_KindMismatchRejected(t *testing.T) {
	decls := []variable.Declaration{
		{Name: "replicas", Kind: variable.KindNumber, Required: true},
	}
	values := map[string]cty.Value{"replicas": cty.StringVal("lots")}

	_, err := Render(`${var.replicas}`, decls, values)
	if err == nil {
		t.Fatal("expected error for string value on number variable")
	}
}

func TestRender_Deterministic(t *testing.T) {
	decls := []variable.Declaration{
		{Name: "name", Kind: variable.KindString, Required: true},
	}
	values := map[string]cty.Value{"name": cty.StringVal("web")}
	template := `resource "aws_instance" "${var.name}" { tag = "${var.name}" }`

	first, err := Render(template, decls, values)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Render(template, decls, values)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if again != first {
			t.Fatalf("run %d differs: %q vs %q", i, again, first)
		}
	}

	// Fully substituted output contains no tokens, so rendering it again
	// is the identity.
	again, err := Render(first, decls, values)
	if err != nil {
		t.Fatalf("Render(rendered): %v", err)
	}
	if again != first {
		t.Errorf("second render changed output: %q vs %q", again, first)
	}
}

func TestEffectiveValues_ConvertsForKind(t *testing.T) {
	decls := []variable.Declaration{
		{Name: "port", Kind: variable.KindNumber, Required: true},
	}
	values := map[string]cty.Value{"port": cty.StringVal("8080")}

	effective, err := EffectiveValues(decls, values)
	if err != nil {
		t.Fatalf("EffectiveValues: %v", err)
	}
	if got := effective["port"]; !got.RawEquals(cty.NumberIntVal(8080)) {
		t.Errorf("port = %#v, want number 8080", got)
	}
}

func TestEffectiveValues_UndefinedOptionalOmitted(t *testing.T) {
	decls := []variable.Declaration{
		{Name: "opt", Kind: variable.KindString},
	}

	effective, err := EffectiveValues(decls, nil)
	if err != nil {
		t.Fatalf("EffectiveValues: %v", err)
	}
	if _, ok := effective["opt"]; ok {
		t.Error("optional variable without default should be absent")
	}
}
