package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/blackroad/terramod/domain/variable"
	"github.com/blackroad/terramod/ports"
)

func TestRegistry_Docs(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	in := ec2Input()
	in.Description = "Provision an EC2 instance."
	in.Outputs = []variable.Output{
		{Name: "instance_id", Description: "EC2 instance ID", ValueExpression: "aws_instance.x.id"},
	}
	in.Tags = []string{"aws", "compute"}
	if _, err := reg.Register(ctx, in); err != nil {
		t.Fatalf("register: %v", err)
	}

	md, err := reg.Docs(ctx, "aws_ec2_instance")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}

	for _, want := range []string{
		"# aws_ec2_instance",
		"**Provider:** `aws`",
		"**Version:** `2.1.0`",
		"Provision an EC2 instance.",
		"## Variables",
		"| `name` | `string` | yes | no | - |",
		"| `instance_type` | `string` | no | no | `\"t3.micro\"` |",
		"## Outputs",
		"| `instance_id` | no | EC2 instance ID |",
		"## Template",
		"```hcl",
		"## Tags",
		"`aws`, `compute`",
		"- **ID:** `mod-1`",
		"- **Downloads:** 0",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("docs missing %q:\n%s", want, md)
		}
	}
}

func TestRegistry_DocsEmptySections(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	in := ec2Input()
	in.Variables = nil
	in.Template = `resource "aws_instance" "fixed" {}`
	if _, err := reg.Register(ctx, in); err != nil {
		t.Fatalf("register: %v", err)
	}

	md, err := reg.Docs(ctx, "aws_ec2_instance")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	if !strings.Contains(md, "_None._") {
		t.Errorf("empty variable table not marked:\n%s", md)
	}
}

func TestRegistry_DocsNotFound(t *testing.T) {
	reg, _ := newTestRegistry(t)

	if _, err := reg.Docs(context.Background(), "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("got %v, want ports.ErrNotFound", err)
	}
}
