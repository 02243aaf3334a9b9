package app_test

import (
	"context"
	"testing"

	"github.com/zclconf/go-cty/cty"

	"github.com/blackroad/terramod/ports"
)

func TestRegistry_SeedBuiltins(t *testing.T) {
	reg, store := newTestRegistry(t)
	ctx := context.Background()

	n, err := reg.SeedBuiltins(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n == 0 {
		t.Fatal("nothing seeded")
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if int(count) != n {
		t.Errorf("count = %d, seeded = %d", count, n)
	}

	// Every built-in template must pass its own static validation and
	// render with only required values supplied.
	mods, err := reg.List(ctx, ports.ModuleFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, m := range mods {
		res := reg.Validate(m.Template)
		if !res.Valid {
			t.Errorf("%s: template invalid: %v", m.Name, res.Errors)
		}

		values := map[string]cty.Value{}
		for _, d := range m.Variables {
			if d.Required && !d.HasDefault() {
				values[d.Name] = cty.StringVal("placeholder")
			}
		}
		if _, err := reg.Generate(ctx, m.Name, values); err != nil {
			t.Errorf("%s: generate: %v", m.Name, err)
		}
	}
}

func TestRegistry_SeedBuiltinsIdempotent(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	first, err := reg.SeedBuiltins(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if first == 0 {
		t.Fatal("nothing seeded")
	}

	again, err := reg.SeedBuiltins(ctx)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if again != 0 {
		t.Errorf("second seed registered %d modules", again)
	}
}
