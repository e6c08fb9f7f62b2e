package authz

import (
	"context"
	"fmt"
	"time"
)

// Attribute is a single piece of data about a subject, with the time the
// data was considered current.
type Attribute interface {
	ID() string      // e.g., "tier"
	Value() any      // The actual data point
	AsOf() time.Time // When the attribute data was considered current
}

// AttributeProvider fetches or calculates a specific Attribute for a subject.
// Providers are the engine's external collaborators: any caching or refresh
// of the underlying data happens here, never inside an evaluator call.
type AttributeProvider interface {
	Describe() Schema
	// Collect fetches the attribute for the given subject id. Implementations
	// handle caching and staleness. Must return ErrAttributeStale or
	// ErrAttributeSourceUnavailable for critical failures.
	Collect(ctx context.Context, subjectID string) (Attribute, error)
}

// BasicAttribute is a concrete implementation of the Attribute interface
type BasicAttribute struct {
	AttrID    string
	AttrValue any
	AttrAsOf  time.Time
}

func (a BasicAttribute) ID() string      { return a.AttrID }
func (a BasicAttribute) Value() any      { return a.AttrValue }
func (a BasicAttribute) AsOf() time.Time { return a.AttrAsOf }

// NewAttribute creates a new Attribute with the given ID, value, and as-of time
func NewAttribute(id string, value any, asOf time.Time) Attribute {
	return BasicAttribute{
		AttrID:    id,
		AttrValue: value,
		AttrAsOf:  asOf,
	}
}

// Well-known attribute ids consumed by SubjectFromSnapshot.
const (
	AttrTier  = "tier"
	AttrAdmin = "admin"
)

// SubjectFromSnapshot builds a Subject from a registry snapshot. Unknown or
// missing attributes fall back to the least-privileged value: basic tier and
// no administrative flag.
func SubjectFromSnapshot(subjectID string, snapshot map[string]any) (Subject, error) {
	s := Subject{ID: subjectID, Tier: TierBasic}

	if raw, ok := snapshot[AttrTier]; ok {
		switch v := raw.(type) {
		case Tier:
			s.Tier = v
		case string:
			s.Tier = Tier(v)
		default:
			return Subject{}, fmt.Errorf("attribute %q for subject %q has unexpected type %T", AttrTier, subjectID, raw)
		}
	}

	if raw, ok := snapshot[AttrAdmin]; ok {
		v, ok := raw.(bool)
		if !ok {
			return Subject{}, fmt.Errorf("attribute %q for subject %q has unexpected type %T", AttrAdmin, subjectID, raw)
		}
		s.Admin = v
	}

	return s, nil
}
