package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zclconf/go-cty/cty"

	"github.com/blackroad/terramod/app"
	"github.com/blackroad/terramod/domain/module"
	"github.com/blackroad/terramod/domain/render"
	"github.com/blackroad/terramod/domain/variable"
	"github.com/blackroad/terramod/ports"
)

// moduleResponse is the wire representation of a module record.
type moduleResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Provider      string                 `json:"provider"`
	ResourceType  string                 `json:"resource_type"`
	Version       string                 `json:"version"`
	Description   string                 `json:"description,omitempty"`
	Template      string                 `json:"template"`
	Variables     []variable.Declaration `json:"variables,omitempty"`
	Outputs       []variable.Output      `json:"outputs,omitempty"`
	Examples      []module.Example       `json:"examples,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	DownloadCount int64                  `json:"download_count"`
}

func toModuleResponse(m module.Module) moduleResponse {
	return moduleResponse{
		ID:            m.ID,
		Name:          m.Name,
		Provider:      string(m.Provider),
		ResourceType:  m.ResourceType,
		Version:       m.Version,
		Description:   m.Description,
		Template:      m.Template,
		Variables:     m.Variables,
		Outputs:       m.Outputs,
		Examples:      m.Examples,
		Tags:          m.Tags,
		CreatedAt:     m.CreatedAt,
		DownloadCount: m.DownloadCount,
	}
}

type registerRequest struct {
	Name         string                 `json:"name"`
	Provider     string                 `json:"provider"`
	ResourceType string                 `json:"resource_type"`
	Version      string                 `json:"version"`
	Description  string                 `json:"description"`
	Template     string                 `json:"template"`
	Variables    []variable.Declaration `json:"variables"`
	Outputs      []variable.Output      `json:"outputs"`
	Examples     []module.Example       `json:"examples"`
	Tags         []string               `json:"tags"`
}

type renderRequest struct {
	Values map[string]json.RawMessage `json:"values"`
}

type renderResponse struct {
	Rendered string `json:"rendered"`
}

type planResponse struct {
	Plan string `json:"plan"`
}

type docsResponse struct {
	Markdown string `json:"markdown"`
}

type validateRequest struct {
	Template string `json:"template"`
}

type validateResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

type statsResponse struct {
	TotalModules   int64              `json:"total_modules"`
	ByProvider     []providerCount    `json:"by_provider"`
	MostDownloaded []downloadedModule `json:"most_downloaded"`
}

type providerCount struct {
	Provider string `json:"provider"`
	Count    int64  `json:"count"`
}

type downloadedModule struct {
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	Downloads int64  `json:"downloads"`
}

// ListModules handles GET /modules with optional provider and resource_type
// filters.
func (h *Handler) ListModules(w http.ResponseWriter, r *http.Request) {
	filter := ports.ModuleFilter{
		Provider:     module.Provider(r.URL.Query().Get("provider")),
		ResourceType: r.URL.Query().Get("resource_type"),
	}
	mods, err := h.registry.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]moduleResponse, 0, len(mods))
	for _, m := range mods {
		out = append(out, toModuleResponse(m))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// RegisterModule handles POST /modules.
func (h *Handler) RegisterModule(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	m, err := h.registry.Register(r.Context(), app.RegisterInput{
		Name:         req.Name,
		Provider:     module.Provider(req.Provider),
		ResourceType: req.ResourceType,
		Version:      req.Version,
		Description:  req.Description,
		Template:     req.Template,
		Variables:    req.Variables,
		Outputs:      req.Outputs,
		Examples:     req.Examples,
		Tags:         req.Tags,
	})
	if err != nil {
		var invalid *app.InvalidTemplateError
		if errors.As(err, &invalid) {
			h.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":    "template failed validation",
				"errors":   invalid.Result.Errors,
				"warnings": invalid.Result.Warnings,
			})
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, toModuleResponse(m))
}

// GetModule handles GET /modules/{id}. The path segment may be an ID or a
// unique module name.
func (h *Handler) GetModule(w http.ResponseWriter, r *http.Request) {
	m, err := h.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toModuleResponse(m))
}

// DeleteModule handles DELETE /modules/{id}.
func (h *Handler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenderModule handles POST /modules/{id}/render.
func (h *Handler) RenderModule(w http.ResponseWriter, r *http.Request) {
	values, ok := h.decodeValues(w, r)
	if !ok {
		return
	}
	rendered, err := h.registry.Generate(r.Context(), chi.URLParam(r, "id"), values)
	if err != nil {
		h.writeRenderError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, renderResponse{Rendered: rendered})
}

// PlanModule handles POST /modules/{id}/plan.
func (h *Handler) PlanModule(w http.ResponseWriter, r *http.Request) {
	values, ok := h.decodeValues(w, r)
	if !ok {
		return
	}
	plan, err := h.registry.ExportPlan(r.Context(), chi.URLParam(r, "id"), values)
	if err != nil {
		h.writeRenderError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, planResponse{Plan: plan})
}

// ModuleDocs handles GET /modules/{id}/docs.
func (h *Handler) ModuleDocs(w http.ResponseWriter, r *http.Request) {
	md, err := h.registry.Docs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, docsResponse{Markdown: md})
}

// ValidateTemplate handles POST /validate.
func (h *Handler) ValidateTemplate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	res := h.registry.Validate(req.Template)
	h.writeJSON(w, http.StatusOK, validateResponse{
		Valid:    res.Valid,
		Errors:   res.Errors,
		Warnings: res.Warnings,
	})
}

// SearchModules handles GET /search?q=.
func (h *Handler) SearchModules(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	mods, err := h.registry.Search(r.Context(), query)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]moduleResponse, 0, len(mods))
	for _, m := range mods {
		out = append(out, toModuleResponse(m))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// Stats handles GET /stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.registry.Stats(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := statsResponse{
		TotalModules:   stats.TotalModules,
		ByProvider:     make([]providerCount, 0, len(stats.ByProvider)),
		MostDownloaded: make([]downloadedModule, 0, len(stats.MostDownloaded)),
	}
	for _, pc := range stats.ByProvider {
		resp.ByProvider = append(resp.ByProvider, providerCount{Provider: string(pc.Provider), Count: pc.Count})
	}
	for _, d := range stats.MostDownloaded {
		resp.MostDownloaded = append(resp.MostDownloaded, downloadedModule{
			Name: d.Name, Provider: string(d.Provider), Downloads: d.Downloads,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// decodeValues parses the render/plan request body into typed variable
// values. Each value is a JSON document; its implied type carries through
// to substitution.
func (h *Handler) decodeValues(w http.ResponseWriter, r *http.Request) (map[string]cty.Value, bool) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return nil, false
	}
	values := make(map[string]cty.Value, len(req.Values))
	for name, raw := range req.Values {
		v, err := variable.ParseJSONValue(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "value for "+name+": "+err.Error())
			return nil, false
		}
		values[name] = v
	}
	return values, true
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ports.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "module not found")
		return
	}
	h.writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) writeRenderError(w http.ResponseWriter, err error) {
	if errors.Is(err, ports.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "module not found")
		return
	}
	var missing *render.MissingRequiredVariableError
	var undeclared *render.UndeclaredReferenceError
	if errors.As(err, &missing) || errors.As(err, &undeclared) {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.writeError(w, http.StatusBadRequest, err.Error())
}
