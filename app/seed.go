package app

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/blackroad/terramod/domain/module"
	"github.com/blackroad/terramod/domain/variable"
)

// SeedBuiltins registers the built-in module catalog. It is a no-op on a
// non-empty store, so restarting a registry never duplicates or resets
// existing records. Returns the number of modules seeded.
func (r *Registry) SeedBuiltins(ctx context.Context) (int, error) {
	n, err := r.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count modules: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	seeded := 0
	for _, in := range builtinModules() {
		if _, err := r.Register(ctx, in); err != nil {
			return seeded, fmt.Errorf("seed %s: %w", in.Name, err)
		}
		seeded++
	}
	r.logger.Info().Int("count", seeded).Msg("built-in modules seeded")
	return seeded, nil
}

func def(v cty.Value) *cty.Value { return &v }

func builtinModules() []RegisterInput {
	return []RegisterInput{
		{
			Name:         "aws_ec2_instance",
			Provider:     module.ProviderAWS,
			ResourceType: "aws_instance",
			Version:      "2.1.0",
			Description:  "Provision an EC2 instance with configurable size, AMI, and networking.",
			Template: `resource "aws_instance" "${var.name}" {
  ami           = "${var.ami_id}"
  instance_type = "${var.instance_type}"
  subnet_id     = "${var.subnet_id}"

  tags = {
    Name        = "${var.name}"
    Environment = "${var.environment}"
    ManagedBy   = "terraform"
  }

  root_block_device {
    volume_size           = ${var.root_volume_size}
    volume_type           = "gp3"
    delete_on_termination = true
    encrypted             = true
  }

  lifecycle {
    ignore_changes = [ami]
  }
}
`,
			Variables: []variable.Declaration{
				{Name: "name", Kind: variable.KindString, Description: "Instance name tag", Required: true},
				{Name: "ami_id", Kind: variable.KindString, Description: "AMI ID", Required: true},
				{Name: "instance_type", Kind: variable.KindString, Description: "EC2 instance type", Default: def(cty.StringVal("t3.micro"))},
				{Name: "subnet_id", Kind: variable.KindString, Description: "Subnet ID", Required: true},
				{Name: "environment", Kind: variable.KindString, Description: "Deployment environment", Default: def(cty.StringVal("dev"))},
				{Name: "root_volume_size", Kind: variable.KindNumber, Description: "Root EBS size (GB)", Default: def(cty.NumberIntVal(20))},
			},
			Outputs: []variable.Output{
				{Name: "instance_id", Description: "EC2 instance ID", ValueExpression: "aws_instance.${var.name}.id"},
				{Name: "public_ip", Description: "Public IP address", ValueExpression: "aws_instance.${var.name}.public_ip"},
				{Name: "private_ip", Description: "Private IP address", ValueExpression: "aws_instance.${var.name}.private_ip"},
			},
			Examples: []module.Example{
				{
					Title:       "Basic web server",
					Description: "A minimal t3.small web server.",
					Code: `module "web" {
  source        = "blackroad/aws_ec2_instance"
  name          = "web-prod"
  ami_id        = "ami-0abcdef1234567890"
  instance_type = "t3.small"
  subnet_id     = "subnet-12345678"
}`,
				},
			},
			Tags: []string{"aws", "ec2", "compute", "vm"},
		},
		{
			Name:         "aws_s3_bucket",
			Provider:     module.ProviderAWS,
			ResourceType: "aws_s3_bucket",
			Version:      "3.0.1",
			Description:  "Create an S3 bucket with versioning and server-side encryption.",
			Template: `resource "aws_s3_bucket" "${var.bucket_name}" {
  bucket = "${var.bucket_name}"

  tags = {
    Name        = "${var.bucket_name}"
    Environment = "${var.environment}"
  }
}

resource "aws_s3_bucket_versioning" "${var.bucket_name}_versioning" {
  bucket = aws_s3_bucket.${var.bucket_name}.id

  versioning_configuration {
    status = "${var.versioning_enabled}"
  }
}

resource "aws_s3_bucket_server_side_encryption_configuration" "${var.bucket_name}_sse" {
  bucket = aws_s3_bucket.${var.bucket_name}.id

  rule {
    apply_server_side_encryption_by_default {
      sse_algorithm = "AES256"
    }
  }
}
`,
			Variables: []variable.Declaration{
				{Name: "bucket_name", Kind: variable.KindString, Description: "Globally unique bucket name", Required: true},
				{Name: "environment", Kind: variable.KindString, Description: "Environment tag", Default: def(cty.StringVal("dev"))},
				{Name: "versioning_enabled", Kind: variable.KindString, Description: "Enable versioning (Enabled/Suspended)", Default: def(cty.StringVal("Enabled"))},
			},
			Outputs: []variable.Output{
				{Name: "bucket_id", Description: "S3 bucket ID", ValueExpression: "aws_s3_bucket.${var.bucket_name}.id"},
				{Name: "bucket_arn", Description: "S3 bucket ARN", ValueExpression: "aws_s3_bucket.${var.bucket_name}.arn"},
			},
			Tags: []string{"aws", "s3", "storage", "object-storage"},
		},
		{
			Name:         "aws_rds_instance",
			Provider:     module.ProviderAWS,
			ResourceType: "aws_db_instance",
			Version:      "1.4.2",
			Description:  "Provision an RDS instance with automated backups, encryption, and multi-AZ support.",
			Template: `resource "aws_db_instance" "${var.identifier}" {
  identifier                = "${var.identifier}"
  engine                    = "${var.engine}"
  instance_class            = "${var.instance_class}"
  allocated_storage         = ${var.allocated_storage}
  db_name                   = "${var.db_name}"
  username                  = "${var.username}"
  password                  = "${var.password}"
  multi_az                  = ${var.multi_az}
  skip_final_snapshot       = false
  final_snapshot_identifier = "${var.identifier}-final"
  storage_encrypted         = true
  backup_retention_period   = ${var.backup_retention_period}

  tags = {
    Name        = "${var.identifier}"
    Environment = "${var.environment}"
  }
}
`,
			Variables: []variable.Declaration{
				{Name: "identifier", Kind: variable.KindString, Description: "RDS instance identifier", Required: true},
				{Name: "engine", Kind: variable.KindString, Description: "Database engine", Default: def(cty.StringVal("postgres"))},
				{Name: "instance_class", Kind: variable.KindString, Description: "Instance class", Default: def(cty.StringVal("db.t3.micro"))},
				{Name: "allocated_storage", Kind: variable.KindNumber, Description: "Storage in GB", Default: def(cty.NumberIntVal(20))},
				{Name: "db_name", Kind: variable.KindString, Description: "Initial database name", Required: true},
				{Name: "username", Kind: variable.KindString, Description: "Master username", Required: true},
				{Name: "password", Kind: variable.KindString, Description: "Master password", Required: true, Sensitive: true},
				{Name: "multi_az", Kind: variable.KindBool, Description: "Enable Multi-AZ", Default: def(cty.False)},
				{Name: "backup_retention_period", Kind: variable.KindNumber, Description: "Backup retention days", Default: def(cty.NumberIntVal(7))},
				{Name: "environment", Kind: variable.KindString, Description: "Environment tag", Default: def(cty.StringVal("dev"))},
			},
			Outputs: []variable.Output{
				{Name: "endpoint", Description: "RDS endpoint", ValueExpression: "aws_db_instance.${var.identifier}.endpoint"},
				{Name: "port", Description: "RDS port", ValueExpression: "aws_db_instance.${var.identifier}.port"},
			},
			Tags: []string{"aws", "rds", "database", "postgres", "mysql"},
		},
		{
			Name:         "aws_vpc",
			Provider:     module.ProviderAWS,
			ResourceType: "aws_vpc",
			Version:      "2.0.0",
			Description:  "Create a VPC with DNS support and a name tag.",
			Template: `resource "aws_vpc" "${var.name}" {
  cidr_block           = "${var.cidr_block}"
  enable_dns_support   = true
  enable_dns_hostnames = ${var.enable_dns_hostnames}

  tags = {
    Name        = "${var.name}"
    Environment = "${var.environment}"
  }
}
`,
			Variables: []variable.Declaration{
				{Name: "name", Kind: variable.KindString, Description: "VPC name tag", Required: true},
				{Name: "cidr_block", Kind: variable.KindString, Description: "IPv4 CIDR block", Default: def(cty.StringVal("10.0.0.0/16"))},
				{Name: "enable_dns_hostnames", Kind: variable.KindBool, Description: "Enable DNS hostnames", Default: def(cty.True)},
				{Name: "environment", Kind: variable.KindString, Description: "Environment tag", Default: def(cty.StringVal("dev"))},
			},
			Outputs: []variable.Output{
				{Name: "vpc_id", Description: "VPC ID", ValueExpression: "aws_vpc.${var.name}.id"},
				{Name: "cidr_block", Description: "VPC CIDR block", ValueExpression: "aws_vpc.${var.name}.cidr_block"},
			},
			Tags: []string{"aws", "vpc", "network"},
		},
		{
			Name:         "gcp_gce_instance",
			Provider:     module.ProviderGCP,
			ResourceType: "google_compute_instance",
			Version:      "1.2.0",
			Description:  "Create a Google Compute Engine VM instance.",
			Template: `resource "google_compute_instance" "${var.name}" {
  name         = "${var.name}"
  machine_type = "${var.machine_type}"
  zone         = "${var.zone}"

  boot_disk {
    initialize_params {
      image = "${var.image}"
      size  = ${var.disk_size_gb}
      type  = "pd-ssd"
    }
  }

  network_interface {
    network = "${var.network}"

    access_config {
    }
  }

  labels = {
    environment = "${var.environment}"
    managed_by  = "terraform"
  }
}
`,
			Variables: []variable.Declaration{
				{Name: "name", Kind: variable.KindString, Description: "Instance name", Required: true},
				{Name: "machine_type", Kind: variable.KindString, Description: "Machine type", Default: def(cty.StringVal("e2-medium"))},
				{Name: "zone", Kind: variable.KindString, Description: "GCP zone", Default: def(cty.StringVal("us-central1-a"))},
				{Name: "image", Kind: variable.KindString, Description: "Boot disk image", Default: def(cty.StringVal("debian-cloud/debian-11"))},
				{Name: "disk_size_gb", Kind: variable.KindNumber, Description: "Boot disk size", Default: def(cty.NumberIntVal(20))},
				{Name: "network", Kind: variable.KindString, Description: "VPC network", Default: def(cty.StringVal("default"))},
				{Name: "environment", Kind: variable.KindString, Description: "Environment", Default: def(cty.StringVal("dev"))},
			},
			Outputs: []variable.Output{
				{Name: "instance_id", Description: "GCE instance ID", ValueExpression: "google_compute_instance.${var.name}.id"},
			},
			Tags: []string{"gcp", "gce", "compute", "vm"},
		},
		{
			Name:         "kubernetes_deployment",
			Provider:     module.ProviderKubernetes,
			ResourceType: "kubernetes_deployment",
			Version:      "1.3.0",
			Description:  "Create a Kubernetes Deployment with configurable replicas, image, and resource limits.",
			Template: `resource "kubernetes_deployment" "${var.name}" {
  metadata {
    name      = "${var.name}"
    namespace = "${var.namespace}"

    labels = {
      app = "${var.name}"
    }
  }

  spec {
    replicas = ${var.replicas}

    selector {
      match_labels = {
        app = "${var.name}"
      }
    }

    template {
      metadata {
        labels = {
          app = "${var.name}"
        }
      }

      spec {
        container {
          name  = "${var.name}"
          image = "${var.image}"

          port {
            container_port = ${var.container_port}
          }

          resources {
            limits = {
              cpu    = "${var.cpu_limit}"
              memory = "${var.memory_limit}"
            }
          }
        }
      }
    }
  }
}
`,
			Variables: []variable.Declaration{
				{Name: "name", Kind: variable.KindString, Description: "Deployment name", Required: true},
				{Name: "namespace", Kind: variable.KindString, Description: "Kubernetes namespace", Default: def(cty.StringVal("default"))},
				{Name: "image", Kind: variable.KindString, Description: "Container image", Required: true},
				{Name: "replicas", Kind: variable.KindNumber, Description: "Number of replicas", Default: def(cty.NumberIntVal(2))},
				{Name: "container_port", Kind: variable.KindNumber, Description: "Container port", Default: def(cty.NumberIntVal(8080))},
				{Name: "cpu_limit", Kind: variable.KindString, Description: "CPU limit", Default: def(cty.StringVal("500m"))},
				{Name: "memory_limit", Kind: variable.KindString, Description: "Memory limit", Default: def(cty.StringVal("256Mi"))},
			},
			Outputs: []variable.Output{
				{Name: "deployment_name", Description: "Deployment name", ValueExpression: "kubernetes_deployment.${var.name}.metadata[0].name"},
			},
			Tags: []string{"kubernetes", "k8s", "deployment", "container"},
		},
	}
}
