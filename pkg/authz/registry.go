package authz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// SnapshotOpts lets the caller tune latency / staleness guarantees.
type SnapshotOpts struct {
	MaxAge             time.Duration // zero => no age check
	PerProviderTimeout time.Duration // enforced with ctx.WithTimeout
}

// Registry holds a collection of AttributeProviders and orchestrates the
// collection of a subject's attributes ahead of a decision call. Evaluators
// stay synchronous and deterministic; everything that touches external data
// runs here, before the policy is consulted.
type Registry struct {
	providers map[string]AttributeProvider
	mu        sync.RWMutex
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]AttributeProvider),
	}
}

// Register adds an AttributeProvider to the registry.
// If a provider with the same ID already exists, it will be replaced.
func (r *Registry) Register(provider AttributeProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	schema := provider.Describe()
	r.providers[schema.ID] = provider
}

// Provider retrieves an AttributeProvider by ID.
func (r *Registry) Provider(attrID string) (AttributeProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[attrID]
	return provider, exists
}

// Snapshot collects all attributes for the given subject from registered
// providers, with no staleness or timeout constraints.
func (r *Registry) Snapshot(ctx context.Context, subjectID string) (map[string]any, error) {
	return r.SnapshotWithOpts(ctx, subjectID, SnapshotOpts{})
}

// SnapshotWithOpts collects all attributes for the given subject in parallel,
// applying the staleness and per-provider timeout constraints from opts. The
// returned map is a point-in-time snapshot: the decision call that consumes
// it sees a fixed view of the external data regardless of how long the chain
// walk takes.
func (r *Registry) SnapshotWithOpts(ctx context.Context, subjectID string, opts SnapshotOpts) (map[string]any, error) {
	r.mu.RLock()
	providers := make(map[string]AttributeProvider, len(r.providers))
	for id, provider := range r.providers {
		providers[id] = provider
	}
	r.mu.RUnlock()

	g, gctx := errgroup.WithContext(ctx)

	type result struct {
		id  string
		val any
		err error
	}
	results := make(chan result, len(providers))

	for id, provider := range providers {
		id, provider := id, provider
		g.Go(func() error {
			pctx := gctx
			if opts.PerProviderTimeout > 0 {
				var cancel context.CancelFunc
				pctx, cancel = context.WithTimeout(gctx, opts.PerProviderTimeout)
				defer cancel()
			}

			attr, err := provider.Collect(pctx, subjectID)
			if err != nil {
				// Errors travel through the channel so one failed provider
				// does not cancel the others mid-flight.
				results <- result{id: id, err: fmt.Errorf("collecting attribute %s: %w", id, err)}
				return nil
			}

			if opts.MaxAge > 0 && time.Since(attr.AsOf()) > opts.MaxAge {
				results <- result{id: id, err: fmt.Errorf("collecting attribute %s: %w", id, ErrAttributeStale)}
				return nil
			}

			results <- result{id: attr.ID(), val: attr.Value(), err: nil}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	snapshot := make(map[string]any, len(providers))
	var firstErr error

	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		snapshot[res.id] = res.val
	}

	if firstErr != nil {
		return nil, firstErr
	}

	return snapshot, nil
}
