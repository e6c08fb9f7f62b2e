package authz

import "fmt"

// Policy is one complete access-control strategy as a value: an ordered,
// immutable sequence of evaluators plus the combinator that resolves their
// opinions. Policies are constructed once and shared read-only across any
// number of concurrent decision calls; building a variant (for example a
// promotional override) produces a new Policy rather than patching the
// sequence in place.
type Policy struct {
	id         string
	evaluators []Evaluator
	combinator Combinator
}

// NewPolicy validates and builds a Policy. A policy with zero evaluators is
// legal and resolves via the combinator's empty-sequence result. Malformed
// policies (missing id, nil combinator, nil evaluator, duplicate evaluator
// ids) are configuration errors reported here, never at decision time.
func NewPolicy(id string, combinator Combinator, evaluators ...Evaluator) (Policy, error) {
	if id == "" {
		return Policy{}, fmt.Errorf("%w: empty policy id", ErrInvalidPolicy)
	}
	if combinator == nil {
		return Policy{}, fmt.Errorf("%w: policy %q has no combinator", ErrInvalidPolicy, id)
	}

	seen := make(map[string]struct{}, len(evaluators))
	chain := make([]Evaluator, len(evaluators))
	for i, e := range evaluators {
		if e == nil {
			return Policy{}, fmt.Errorf("%w: policy %q has a nil evaluator at position %d", ErrInvalidPolicy, id, i)
		}
		evalID := e.Describe().ID
		if _, dup := seen[evalID]; dup {
			return Policy{}, fmt.Errorf("%w: policy %q has duplicate evaluator %q", ErrInvalidPolicy, id, evalID)
		}
		seen[evalID] = struct{}{}
		chain[i] = e
	}

	return Policy{id: id, evaluators: chain, combinator: combinator}, nil
}

// MustPolicy is NewPolicy that panics on error, for statically known policies.
func MustPolicy(id string, combinator Combinator, evaluators ...Evaluator) Policy {
	p, err := NewPolicy(id, combinator, evaluators...)
	if err != nil {
		panic(err)
	}
	return p
}

// ID returns the policy identifier.
func (p Policy) ID() string { return p.id }

// Combinator returns the policy's combinator.
func (p Policy) Combinator() Combinator { return p.combinator }

// Len returns the number of evaluators in the chain.
func (p Policy) Len() int { return len(p.evaluators) }

// Evaluators returns a copy of the evaluator chain in sequence order.
func (p Policy) Evaluators() []Evaluator {
	out := make([]Evaluator, len(p.evaluators))
	copy(out, p.evaluators)
	return out
}

// Append returns a new Policy with the given evaluators added to the end of
// the chain. The receiver is unchanged.
func (p Policy) Append(evaluators ...Evaluator) (Policy, error) {
	chain := make([]Evaluator, 0, len(p.evaluators)+len(evaluators))
	chain = append(chain, p.evaluators...)
	chain = append(chain, evaluators...)
	return NewPolicy(p.id, p.combinator, chain...)
}

// InsertBefore returns a new Policy with evaluator e inserted immediately
// before the evaluator whose id is targetID. The receiver is unchanged.
// Returns ErrUnknownEvaluator if no evaluator in the chain has that id.
func (p Policy) InsertBefore(targetID string, e Evaluator) (Policy, error) {
	idx := -1
	for i, existing := range p.evaluators {
		if existing.Describe().ID == targetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Policy{}, fmt.Errorf("%w: %q", ErrUnknownEvaluator, targetID)
	}

	chain := make([]Evaluator, 0, len(p.evaluators)+1)
	chain = append(chain, p.evaluators[:idx]...)
	chain = append(chain, e)
	chain = append(chain, p.evaluators[idx:]...)
	return NewPolicy(p.id, p.combinator, chain...)
}

// coverageProbes returns the subject archetypes used by the exhaustiveness
// check: the object's owner, a basic-tier subject, and a premium-tier
// subject. Administrative subjects are deliberately absent: an admin-bypass
// rule is decisive for every object regardless of visibility, so an admin
// probe would mark any variant as covered and the check would never catch a
// variant the policy cannot actually resolve for ordinary subjects.
func coverageProbes(owner string) []Subject {
	return []Subject{
		{ID: owner, Tier: TierBasic},
		{ID: "probe-basic", Tier: TierBasic},
		{ID: "probe-premium", Tier: TierPremium},
	}
}

// CheckVisibilityCoverage verifies that every visibility variant in use is
// resolved to a non-Abstain decision by some evaluator in the chain for at
// least one subject/object pair. It probes each variant against a canonical
// set of subject archetypes and both owner-match and owner-mismatch objects.
// A variant for which every probe abstains means the policy cannot express an
// opinion about that visibility at all; that is reported as
// ErrUnhandledVariant at construction/validation time rather than surfacing
// as a silent Abstain at decision time.
func (p Policy) CheckVisibilityCoverage(variants ...Visibility) error {
	const probeOwner = "probe-owner"

	for _, v := range variants {
		covered := false
	probing:
		for _, o := range []Object{
			{Visibility: v, Owner: probeOwner},
			{Visibility: v, Owner: "someone-else"},
		} {
			for _, s := range coverageProbes(probeOwner) {
				for _, e := range p.evaluators {
					if e.Evaluate(s, o).Decisive() {
						covered = true
						break probing
					}
				}
			}
		}
		if !covered {
			return fmt.Errorf("%w: policy %q, visibility %q", ErrUnhandledVariant, p.id, v)
		}
	}
	return nil
}
