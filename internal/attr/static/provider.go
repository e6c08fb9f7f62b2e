// Package static provides an attribute provider backed by already-loaded
// in-memory data, for deployments whose subject attributes ship with
// configuration rather than living behind a directory service.
package static

import (
	"context"
	"time"

	"github.com/authchain/authchain/pkg/authz"
)

// Provider implements authz.AttributeProvider from a fixed per-subject map.
type Provider struct {
	attrID      string
	description string
	values      map[string]any
	fallback    any
}

var _ authz.AttributeProvider = (*Provider)(nil)

// NewProvider creates a provider for one attribute id. values maps subject id
// to the attribute value; subjects absent from the map get fallback.
func NewProvider(attrID, description string, values map[string]any, fallback any) *Provider {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Provider{
		attrID:      attrID,
		description: description,
		values:      copied,
		fallback:    fallback,
	}
}

// NewTierProvider creates a provider for the well-known tier attribute.
// Subjects absent from the map are basic tier.
func NewTierProvider(tiers map[string]any) *Provider {
	return NewProvider(authz.AttrTier, "Subject service tier", tiers, string(authz.TierBasic))
}

// NewAdminProvider creates a provider for the well-known admin attribute.
// Subjects absent from the set are not administrators.
func NewAdminProvider(adminIDs ...string) *Provider {
	values := make(map[string]any, len(adminIDs))
	for _, id := range adminIDs {
		values[id] = true
	}
	return NewProvider(authz.AttrAdmin, "Subject administrative flag", values, false)
}

// Describe implements authz.AttributeProvider.
func (p *Provider) Describe() authz.Schema {
	return authz.Schema{
		ID:          p.attrID,
		Description: p.description,
	}
}

// Collect implements authz.AttributeProvider. Static attributes are always
// fresh: the snapshot is the source of truth.
func (p *Provider) Collect(_ context.Context, subjectID string) (authz.Attribute, error) {
	value, ok := p.values[subjectID]
	if !ok {
		value = p.fallback
	}
	return authz.NewAttribute(p.attrID, value, time.Now()), nil
}
