// Package registry binds operation names to configured pipeline instances.
// The binding is explicit dependency injection built at construction, not a
// process-wide singleton, and it fails fast when an operation lacks any of
// its static artifacts.
package registry

import (
	"context"
	"fmt"
	"sort"

	"camara-gateway/internal/catalog"
	"camara-gateway/internal/common/logger"
	"camara-gateway/internal/common/observability"
	"camara-gateway/internal/pipeline"
	"camara-gateway/internal/pipeline/dispatch"
	"camara-gateway/internal/pipeline/response"
	"camara-gateway/internal/pipeline/template"
)

type Registry struct {
	pipelines map[string]*pipeline.Pipeline
	cache     *catalog.Cache
	logger    logger.Logger
}

// New builds the registry from the operation catalog. Every definition must
// carry a schema, an endpoint and at least one response variant, and must
// have a template registered; a gap in any of these is a startup error, not
// a per-call one.
func New(defs []pipeline.Definition, templates *template.Registry, d *dispatch.Dispatcher, obs *observability.Observability, cache *catalog.Cache, log logger.Logger) (*Registry, error) {
	pipelines := make(map[string]*pipeline.Pipeline, len(defs))

	for _, def := range defs {
		if def.Operation == "" {
			return nil, fmt.Errorf("operation definition without a name")
		}
		if _, dup := pipelines[def.Operation]; dup {
			return nil, fmt.Errorf("duplicate operation %q", def.Operation)
		}
		if def.Schema.Operation != def.Operation {
			return nil, fmt.Errorf("operation %q: schema declared for %q", def.Operation, def.Schema.Operation)
		}
		if def.Endpoint.Method == "" || def.Endpoint.Path == "" {
			return nil, fmt.Errorf("operation %q: incomplete endpoint descriptor", def.Operation)
		}
		if len(def.Variants) == 0 {
			return nil, fmt.Errorf("operation %q: no response variants declared", def.Operation)
		}

		tpl, ok := templates.Lookup(def.Operation)
		if !ok {
			return nil, fmt.Errorf("operation %q: no request template registered", def.Operation)
		}

		pipelines[def.Operation] = pipeline.New(def, tpl, d, obs, log)
	}

	return &Registry{
		pipelines: pipelines,
		cache:     cache,
		logger:    log,
	}, nil
}

// Invoke runs one named operation through its pipeline. Cacheable reads are
// served from the catalog cache when possible.
func (r *Registry) Invoke(ctx context.Context, operation string, args map[string]interface{}) (*response.TypedResponse, error) {
	p, ok := r.pipelines[operation]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", operation)
	}

	if p.Cacheable() && r.cache != nil {
		if typed, hit := r.cache.Get(ctx, operation); hit {
			return typed, nil
		}
	}

	typed, err := p.Execute(ctx, args)
	if err != nil {
		return nil, err
	}

	if p.Cacheable() && r.cache != nil {
		r.cache.Set(ctx, operation, typed)
	}
	return typed, nil
}

// Operations returns the bound operation names, sorted.
func (r *Registry) Operations() []string {
	names := make([]string, 0, len(r.pipelines))
	for name := range r.pipelines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether an operation is bound.
func (r *Registry) Has(operation string) bool {
	_, ok := r.pipelines[operation]
	return ok
}
