package app_test

import (
	"context"
	"strings"
	"testing"

	"github.com/zclconf/go-cty/cty"
)

func TestRegistry_ExportPlan(t *testing.T) {
	reg, store := newTestRegistry(t)
	ctx := context.Background()

	if _, err := reg.Register(ctx, ec2Input()); err != nil {
		t.Fatalf("register: %v", err)
	}

	plan, err := reg.ExportPlan(ctx, "aws_ec2_instance", map[string]cty.Value{
		"name":   cty.StringVal("web"),
		"ami_id": cty.StringVal("ami-123"),
	})
	if err != nil {
		t.Fatalf("export plan: %v", err)
	}

	for _, want := range []string{
		"# Terraform Plan Export",
		"# Module   : aws_ec2_instance v2.1.0",
		"# Provider : aws",
		"# Generated: 2026-03-15T12:00:00Z",
		`  + resource "aws_instance" "web" {`,
		"Plan: 1 to add, 0 to change, 0 to destroy.",
		"# Rendered HCL",
		`ami           = "ami-123"`,
	} {
		if !strings.Contains(plan, want) {
			t.Errorf("plan missing %q:\n%s", want, plan)
		}
	}

	// Plan export renders the template, so it counts as a download.
	m, err := store.Get(ctx, "mod-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if m.DownloadCount != 1 {
		t.Errorf("downloads = %d, want 1", m.DownloadCount)
	}
}

func TestRegistry_ExportPlanMissingValues(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	if _, err := reg.Register(ctx, ec2Input()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := reg.ExportPlan(ctx, "aws_ec2_instance", nil); err == nil {
		t.Error("expected error for missing required values")
	}
}
