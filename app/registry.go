// Package app provides application services that orchestrate domain logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"

	"github.com/blackroad/terramod/adapters/metrics"
	"github.com/blackroad/terramod/domain/hcl"
	"github.com/blackroad/terramod/domain/module"
	"github.com/blackroad/terramod/domain/render"
	"github.com/blackroad/terramod/domain/variable"
	"github.com/blackroad/terramod/ports"
)

// Registry is the application service for the module registry. It owns no
// algorithmic logic of its own: rendering and validation live in domain
// packages, persistence behind ports.ModuleStore.
type Registry struct {
	store   ports.ModuleStore
	clock   ports.Clock
	ids     ports.IDGenerator
	metrics *metrics.Collector // optional
	logger  zerolog.Logger
}

// RegistryConfig contains optional dependencies for the registry service.
type RegistryConfig struct {
	Metrics *metrics.Collector
}

// NewRegistry creates a new registry service.
func NewRegistry(store ports.ModuleStore, clock ports.Clock, ids ports.IDGenerator, logger zerolog.Logger, cfg RegistryConfig) *Registry {
	return &Registry{
		store:   store,
		clock:   clock,
		ids:     ids,
		metrics: cfg.Metrics,
		logger:  logger.With().Str("service", "registry").Logger(),
	}
}

// InvalidTemplateError is returned when a template fails static validation
// at registration time. It carries the full validation result.
type InvalidTemplateError struct {
	Result hcl.Result
}

func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("invalid template: %s", strings.Join(e.Result.Errors, "; "))
}

// RegisterInput describes a module to register.
type RegisterInput struct {
	Name         string
	Provider     module.Provider
	ResourceType string
	Version      string
	Description  string
	Template     string
	Variables    []variable.Declaration
	Outputs      []variable.Output
	Examples     []module.Example
	Tags         []string
}

// Register validates and stores a new module. The template must pass static
// validation; validation warnings are logged but do not block registration.
func (r *Registry) Register(ctx context.Context, in RegisterInput) (module.Module, error) {
	version := in.Version
	if version == "" {
		version = "1.0.0"
	}

	m := module.Module{
		ID:           r.ids.New(),
		Name:         in.Name,
		Provider:     in.Provider,
		ResourceType: in.ResourceType,
		Version:      version,
		Description:  in.Description,
		Template:     in.Template,
		Variables:    in.Variables,
		Outputs:      in.Outputs,
		Examples:     in.Examples,
		Tags:         in.Tags,
		CreatedAt:    r.clock.Now().UTC(),
	}
	if err := module.Validate(m); err != nil {
		return module.Module{}, err
	}

	vr := hcl.Validate(in.Template)
	if !vr.Valid {
		return module.Module{}, &InvalidTemplateError{Result: vr}
	}
	for _, w := range vr.Warnings {
		r.logger.Warn().Str("module", in.Name).Str("finding", w).Msg("template warning at registration")
	}

	if err := r.store.Create(ctx, m); err != nil {
		return module.Module{}, fmt.Errorf("store module: %w", err)
	}
	if r.metrics != nil {
		r.metrics.ModulesRegistered.Inc()
	}

	r.logger.Info().
		Str("id", m.ID).
		Str("name", m.Name).
		Str("provider", string(m.Provider)).
		Str("version", m.Version).
		Msg("module registered")
	return m, nil
}

// Generate renders a module's template with the supplied values and records
// one download. The counter increment is the store's side effect, applied
// here exactly once per successful render and never by the renderer itself.
func (r *Registry) Generate(ctx context.Context, idOrName string, values map[string]cty.Value) (string, error) {
	m, err := r.store.Get(ctx, idOrName)
	if err != nil {
		return "", err
	}

	out, err := render.Render(m.Template, m.Variables, values)
	if err != nil {
		if r.metrics != nil {
			r.metrics.RenderFailures.WithLabelValues(m.Name, renderFailureReason(err)).Inc()
		}
		return "", err
	}

	if err := r.store.IncrementDownloads(ctx, m.ID); err != nil {
		// The render already succeeded; losing a counter tick is not worth
		// failing the call over.
		r.logger.Error().Err(err).Str("id", m.ID).Msg("increment download count")
	}
	if r.metrics != nil {
		r.metrics.RendersTotal.WithLabelValues(m.Name, string(m.Provider)).Inc()
		r.metrics.DownloadsTotal.WithLabelValues(m.Name).Inc()
	}

	r.logger.Info().Str("name", m.Name).Int("bytes", len(out)).Msg("template rendered")
	return out, nil
}

// Validate statically checks template text.
func (r *Registry) Validate(text string) hcl.Result {
	res := hcl.Validate(text)
	if r.metrics != nil {
		r.metrics.ValidationsTotal.Inc()
		r.metrics.ValidationFindings.WithLabelValues("error").Add(float64(len(res.Errors)))
		r.metrics.ValidationFindings.WithLabelValues("warning").Add(float64(len(res.Warnings)))
	}
	return res
}

// Get retrieves a module by ID or unique name.
func (r *Registry) Get(ctx context.Context, idOrName string) (module.Module, error) {
	return r.store.Get(ctx, idOrName)
}

// List returns modules matching the filter.
func (r *Registry) List(ctx context.Context, f ports.ModuleFilter) ([]module.Module, error) {
	return r.store.List(ctx, f)
}

// Search returns modules matching a free-text query.
func (r *Registry) Search(ctx context.Context, query string) ([]module.Module, error) {
	return r.store.Search(ctx, query)
}

// Delete removes a module by ID or name.
func (r *Registry) Delete(ctx context.Context, idOrName string) error {
	if err := r.store.Delete(ctx, idOrName); err != nil {
		return err
	}
	r.logger.Info().Str("module", idOrName).Msg("module deleted")
	return nil
}

// Stats aggregates registry statistics.
func (r *Registry) Stats(ctx context.Context) (ports.Stats, error) {
	return r.store.Stats(ctx)
}

func renderFailureReason(err error) string {
	var missing *render.MissingRequiredVariableError
	if errors.As(err, &missing) {
		return "missing_required_variable"
	}
	var undeclared *render.UndeclaredReferenceError
	if errors.As(err, &undeclared) {
		return "undeclared_reference"
	}
	return "invalid_values"
}
