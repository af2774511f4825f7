// Package pipeline sequences one user turn through the fixed stages
// Classifier -> Selector -> Guard -> Responder. The flow is a plain ordered
// function pipeline over an accumulating run state; there is no branching
// back, no fan-out and no shared state between runs, so concurrent turns are
// fully independent.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/shopassist-poc/server/internal/agent/classify"
	"github.com/shopassist-poc/server/internal/agent/model"
	"github.com/shopassist-poc/server/internal/agent/store"
	logx "github.com/shopassist-poc/server/pkg/logger"
)

// Config holds everything needed to compose the pipeline end-to-end.
type Config struct {
	// Classifier may be nil; the runner always wraps it with the keyword
	// fallback, so a nil service just means heuristic-only classification.
	Classifier classify.Classifier
	Catalog    *store.Catalog
	Orders     *store.Orders
	// Now supplies the reference time for the cancellation policy. Defaults
	// to time.Now; tests freeze it for reproducible traces.
	Now func() time.Time
}

// Runner executes the pipeline for single turns.
type Runner struct {
	classifier classify.Classifier
	catalog    *store.Catalog
	orders     *store.Orders
	now        func() time.Time
}

// New validates the configuration and builds a Runner.
func New(cfg Config) (*Runner, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog source is nil")
	}
	if cfg.Orders == nil {
		return nil, fmt.Errorf("order source is nil")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Runner{
		classifier: classify.WithFallback(cfg.Classifier),
		catalog:    cfg.Catalog,
		orders:     cfg.Orders,
		now:        now,
	}, nil
}

// Run processes one turn. It is total: every input in the domain produces a
// result with a non-empty final message, and classification failures are
// absorbed by the fallback rather than surfaced.
func (r *Runner) Run(ctx context.Context, query string) *model.RunResult {
	s := model.NewRunState(query)

	intent, _ := r.classifier.Classify(ctx, query)
	s.SetIntent(intent)
	logx.Debug().Str("intent", intent.String()).Msg("intent resolved")

	hint := r.selectAndRun(s)
	r.enforcePolicy(s, hint)
	r.respond(s)

	logx.Debug().
		Str("intent", s.Intent.String()).
		Strs("tools_called", s.ToolsCalled()).
		Bool("policy_present", s.Policy != nil).
		Msg("run complete")

	return &model.RunResult{FinalMessage: s.FinalMessage, Trace: s.Trace()}
}
