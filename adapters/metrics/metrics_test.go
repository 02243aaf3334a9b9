package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/blackroad/terramod/adapters/metrics"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewWithRegistry(reg)

	c.RendersTotal.WithLabelValues("aws_ec2_instance", "aws").Inc()
	c.RendersTotal.WithLabelValues("aws_ec2_instance", "aws").Inc()
	c.RenderFailures.WithLabelValues("aws_ec2_instance", "missing_required_variable").Inc()
	c.ValidationsTotal.Inc()
	c.ValidationFindings.WithLabelValues("warning").Add(3)
	c.ModulesRegistered.Inc()
	c.DownloadsTotal.WithLabelValues("aws_ec2_instance").Inc()

	renders := c.RendersTotal.WithLabelValues("aws_ec2_instance", "aws")
	if got := testutil.ToFloat64(renders); got != 2 {
		t.Errorf("renders_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.ValidationsTotal); got != 1 {
		t.Errorf("validations_total = %v, want 1", got)
	}
	findings := c.ValidationFindings.WithLabelValues("warning")
	if got := testutil.ToFloat64(findings); got != 3 {
		t.Errorf("validation_findings_total = %v, want 3", got)
	}
}

func TestCollector_SeparateRegistries(t *testing.T) {
	// Two collectors on separate registries must not collide.
	a := metrics.NewWithRegistry(prometheus.NewRegistry())
	b := metrics.NewWithRegistry(prometheus.NewRegistry())

	a.ModulesRegistered.Inc()
	if got := testutil.ToFloat64(b.ModulesRegistered); got != 0 {
		t.Errorf("second collector saw %v registrations", got)
	}
}
