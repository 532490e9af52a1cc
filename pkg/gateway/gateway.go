// Package gateway exposes routed generation as a virtual "auto" provider:
// it scores each request, dispatches to the selected adapter, and re-routes
// around candidates that fail.
package gateway

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/zen-systems/tiergate/pkg/adapter"
	"github.com/zen-systems/tiergate/pkg/archive"
	"github.com/zen-systems/tiergate/pkg/artifact"
	"github.com/zen-systems/tiergate/pkg/catalog"
	"github.com/zen-systems/tiergate/pkg/router"
)

// ModelAuto is the pseudo-model name callers address the gateway with.
const ModelAuto = "auto"

// Request is one generation request to the gateway.
type Request struct {
	Prompt string
	System string

	// Tools lists tool names attached to the request. A non-empty list
	// forces the agentic preference table.
	Tools []string

	// Agentic forces the agentic preference table even without tools.
	Agentic bool

	// SessionID, when set, pins the first successful selection and reuses
	// it for subsequent requests with the same SessionID.
	SessionID string
}

// Reply is a routed generation result.
type Reply struct {
	Artifact *artifact.Artifact   `json:"artifact"`
	Decision *router.Decision     `json:"decision"`
	Attempts []adapter.CallReport `json:"attempts"`
}

// Gateway routes and dispatches requests. It implements adapter.Adapter so
// it can be registered alongside the real providers under the name "auto".
type Gateway struct {
	adapters map[string]adapter.Adapter
	router   *router.Router
	catalog  catalog.Catalog
	archive  *archive.Store
	debug    bool

	mu   sync.Mutex
	pins map[string]router.Decision
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithDebug enables dispatch logging.
func WithDebug(debug bool) Option {
	return func(g *Gateway) {
		g.debug = debug
	}
}

// WithArchive stores every dispatched artifact in the given archive.
// Archiving is best effort; failures are logged, not returned.
func WithArchive(store *archive.Store) Option {
	return func(g *Gateway) {
		g.archive = store
	}
}

// New creates a gateway over the given adapters, router, and catalog.
func New(adapters map[string]adapter.Adapter, r *router.Router, cat catalog.Catalog, opts ...Option) *Gateway {
	g := &Gateway{
		adapters: adapters,
		router:   r,
		catalog:  cat,
		pins:     make(map[string]router.Decision),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the virtual provider identifier.
func (g *Gateway) Name() string {
	return "auto"
}

// Models returns the single pseudo-model the gateway serves.
func (g *Gateway) Models() []string {
	return []string{ModelAuto}
}

// Generate satisfies adapter.Adapter by routing the prompt. The model
// argument is ignored; the gateway always picks its own.
func (g *Gateway) Generate(ctx context.Context, _ string, prompt string) (*artifact.Artifact, error) {
	reply, err := g.Ask(ctx, Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	return reply.Artifact, nil
}

// Ask routes the request and dispatches it, re-routing around failed
// candidates until one succeeds or none remain. Every failed candidate
// joins the exclusion set, so the pool shrinks each iteration and the
// loop terminates.
func (g *Gateway) Ask(ctx context.Context, req Request) (*Reply, error) {
	exclude := make(map[string]bool)
	var attempts []adapter.CallReport
	var lastErr error

	for {
		dec, err := g.decide(req, exclude)
		if err != nil {
			if lastErr != nil {
				return nil, fmt.Errorf("gateway: %d dispatch attempts failed, no candidates remain: %w", len(attempts), lastErr)
			}
			return nil, err
		}

		report := adapter.CallReport{
			Adapter:      dec.Provider,
			Model:        dec.Model,
			FallbackUsed: dec.UsedFallback,
		}

		art, err := g.dispatch(ctx, dec, req)
		if err != nil {
			report.Error = err.Error()
			report.Transient = adapter.IsTransient(err)
			attempts = append(attempts, report)
			lastErr = err
			g.router.Stats().RecordCandidateFailure()
			exclude[dec.Key()] = true
			g.unpin(req.SessionID, dec)
			if g.debug {
				log.Printf("[gateway] %s failed (transient=%v), re-routing: %v", dec.Key(), report.Transient, err)
			}
			continue
		}

		attempts = append(attempts, report)
		art = art.WithMetadata("request_id", uuid.NewString())
		g.remember(req.SessionID, dec)
		if g.archive != nil {
			if _, err := g.archive.Put(art); err != nil {
				log.Printf("[gateway] archive write failed: %v", err)
			}
		}
		return &Reply{Artifact: art, Decision: dec, Attempts: attempts}, nil
	}
}

// decide returns the pinned selection for the session when it is still
// usable, and routes fresh otherwise.
func (g *Gateway) decide(req Request, exclude map[string]bool) (*router.Decision, error) {
	if dec := g.pinned(req.SessionID, exclude); dec != nil {
		return dec, nil
	}
	return g.router.Route(router.Request{
		UserText:     req.Prompt,
		SystemText:   req.System,
		ForceAgentic: req.Agentic || len(req.Tools) > 0,
		Exclude:      exclude,
	})
}

func (g *Gateway) dispatch(ctx context.Context, dec *router.Decision, req Request) (*artifact.Artifact, error) {
	a, ok := g.adapters[dec.Provider]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for provider %q", dec.Provider)
	}
	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + req.Prompt
	}
	return a.Generate(ctx, dec.Model, prompt)
}

// pinned returns the session's pinned decision marked Pinned, or nil when
// no usable pin exists. The full original decision is reused so tier,
// confidence, and reasoning stay intact across pinned turns.
func (g *Gateway) pinned(session string, exclude map[string]bool) *router.Decision {
	if session == "" {
		return nil
	}
	g.mu.Lock()
	p, ok := g.pins[session]
	g.mu.Unlock()
	if !ok || exclude[p.Key()] {
		return nil
	}
	for _, c := range g.catalog.Candidates() {
		if c.Available && c.Key() == p.Key() {
			dec := p
			dec.Pinned = true
			return &dec
		}
	}
	return nil
}

func (g *Gateway) remember(session string, dec *router.Decision) {
	if session == "" {
		return
	}
	g.mu.Lock()
	g.pins[session] = *dec
	g.mu.Unlock()
}

func (g *Gateway) unpin(session string, dec *router.Decision) {
	if session == "" {
		return
	}
	g.mu.Lock()
	if p, ok := g.pins[session]; ok && p.Key() == dec.Key() {
		delete(g.pins, session)
	}
	g.mu.Unlock()
}
