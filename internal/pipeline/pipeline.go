// Package pipeline wires the four translation stages into one linear call:
// Validator -> Merger -> Dispatcher -> Typer. Each invocation is an
// independent unit of work; no state is shared across calls.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	commonerrors "camara-gateway/internal/common/errors"
	"camara-gateway/internal/common/logger"
	"camara-gateway/internal/common/metrics"
	"camara-gateway/internal/common/observability"
	"camara-gateway/internal/pipeline/dispatch"
	"camara-gateway/internal/pipeline/response"
	"camara-gateway/internal/pipeline/schema"
	"camara-gateway/internal/pipeline/template"
)

// Definition binds everything one operation needs: its schema, endpoint,
// response variants and flags. The template itself is resolved from the
// registry at construction time.
type Definition struct {
	Operation string
	Schema    schema.OperationSchema
	Endpoint  dispatch.Endpoint
	Variants  []response.Variant

	// Cacheable marks naturally idempotent reads whose typed result may be
	// served from the catalog cache.
	Cacheable bool
}

// Pipeline is one configured operation pipeline. Safe for unbounded
// concurrent invocation: the stages below the dispatcher are pure functions
// and the dispatcher shares only the HTTP connection pool.
type Pipeline struct {
	def        Definition
	tpl        template.Template
	dispatcher *dispatch.Dispatcher
	obs        *observability.Observability
	logger     logger.Logger
}

func New(def Definition, tpl template.Template, d *dispatch.Dispatcher, obs *observability.Observability, log logger.Logger) *Pipeline {
	return &Pipeline{
		def:        def,
		tpl:        tpl,
		dispatcher: d,
		obs:        obs,
		logger:     log.WithFields(map[string]interface{}{"operation": def.Operation}),
	}
}

// Operation returns the bound operation name.
func (p *Pipeline) Operation() string {
	return p.def.Operation
}

// Cacheable reports whether the typed result may be cached.
func (p *Pipeline) Cacheable() bool {
	return p.def.Cacheable
}

// Execute runs one call through the full pipeline. Validation and
// configuration failures return before any network traffic; dispatch and
// response failures carry enough detail for the caller to decide whether to
// retry or surface the error.
func (p *Pipeline) Execute(ctx context.Context, raw map[string]interface{}) (*response.TypedResponse, error) {
	requestID := uuid.NewString()
	log := p.logger.WithFields(map[string]interface{}{"requestId": requestID})
	start := time.Now()

	validated, err := schema.Validate(raw, p.def.Schema)
	if err != nil {
		log.Warn("validation failed", map[string]interface{}{"error": err.Error()})
		p.recordFailure(ctx, err)
		return nil, err
	}

	merged, err := template.Merge(p.def.Operation, p.tpl, validated)
	if err != nil {
		log.Error("template merge failed", map[string]interface{}{"error": err.Error()})
		p.recordFailure(ctx, err)
		return nil, err
	}

	rawResp, err := p.dispatcher.Dispatch(ctx, p.def.Operation, p.def.Endpoint, merged)
	if err != nil {
		log.Warn("dispatch failed", map[string]interface{}{"error": err.Error()})
		p.recordFailure(ctx, err)
		return nil, err
	}

	typed, err := response.Type(p.def.Operation, rawResp, p.def.Variants)
	if err != nil {
		// Contract drift between the backend and the declared variants;
		// logged for operator attention.
		log.Error("response shape unrecognized", map[string]interface{}{"error": err.Error()})
		p.recordFailure(ctx, err)
		return nil, err
	}

	duration := time.Since(start)
	metrics.PipelineCallsCompleted.WithLabelValues(p.def.Operation, typed.Variant).Inc()
	metrics.PipelineCallDuration.WithLabelValues(p.def.Operation).Observe(duration.Seconds())
	if p.obs != nil {
		p.obs.RecordCall(ctx, p.def.Operation, "success")
		p.obs.RecordCallDuration(ctx, p.def.Operation, duration)
	}

	log.Info("pipeline call completed", map[string]interface{}{
		"variant":    typed.Variant,
		"durationMs": duration.Milliseconds(),
	})
	return typed, nil
}

func (p *Pipeline) recordFailure(ctx context.Context, err error) {
	code := commonerrors.CodeOf(err)
	metrics.PipelineCallsFailed.WithLabelValues(p.def.Operation, string(code)).Inc()
	if p.obs != nil {
		p.obs.RecordCall(ctx, p.def.Operation, "error")
	}
}
