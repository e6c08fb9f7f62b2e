// Package dirsvc provides an attribute provider backed by a directory
// service HTTP API.
package dirsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/authchain/authchain/internal/metrics"
	"github.com/authchain/authchain/pkg/authz"
	"github.com/prometheus/client_golang/prometheus"
)

// Provider implements authz.AttributeProvider against a directory service
// endpoint. Responses are cached per subject for cacheTTL so a burst of
// decisions about one subject costs a single lookup.
type Provider struct {
	baseURL     string
	attrID      string
	httpClient  *http.Client
	cacheTTL    time.Duration
	description string

	mu     sync.RWMutex
	cache  map[string]authz.Attribute
	expiry map[string]time.Time
}

var _ authz.AttributeProvider = (*Provider)(nil)

// NewProvider creates a new directory service attribute provider.
func NewProvider(attrID, baseURL string, cacheTTL time.Duration, description string) *Provider {
	return &Provider{
		baseURL:     baseURL,
		attrID:      attrID,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		cacheTTL:    cacheTTL,
		description: description,
		cache:       make(map[string]authz.Attribute),
		expiry:      make(map[string]time.Time),
	}
}

// Describe implements authz.AttributeProvider.
func (p *Provider) Describe() authz.Schema {
	return authz.Schema{
		ID:          p.attrID,
		Description: p.description,
	}
}

// Collect implements authz.AttributeProvider.
func (p *Provider) Collect(ctx context.Context, subjectID string) (authz.Attribute, error) {
	timer := prometheus.NewTimer(metrics.AttributeCollectLatency.WithLabelValues(p.attrID))
	defer timer.ObserveDuration()

	p.mu.RLock()
	if cached, ok := p.cache[subjectID]; ok && time.Now().Before(p.expiry[subjectID]) {
		p.mu.RUnlock()
		return cached, nil
	}
	p.mu.RUnlock()

	url := fmt.Sprintf("%s/api/subjects/%s/attributes/%s", p.baseURL, subjectID, p.attrID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		metrics.AttributeCollectErrors.WithLabelValues(p.attrID, "request_creation").Inc()
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		metrics.AttributeCollectErrors.WithLabelValues(p.attrID, "http_error").Inc()
		return nil, fmt.Errorf("%w: %v", authz.ErrAttributeSourceUnavailable, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			metrics.AttributeCollectErrors.WithLabelValues(p.attrID, "body_close_error").Inc()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		metrics.AttributeCollectErrors.WithLabelValues(p.attrID, fmt.Sprintf("status_%d", resp.StatusCode)).Inc()
		return nil, fmt.Errorf("%w: unexpected status code %d", authz.ErrAttributeSourceUnavailable, resp.StatusCode)
	}

	var result struct {
		Value any       `json:"value"`
		AsOf  time.Time `json:"as_of"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.AttributeCollectErrors.WithLabelValues(p.attrID, "decode_error").Inc()
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	asOf := result.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	attr := authz.NewAttribute(p.attrID, result.Value, asOf)

	p.mu.Lock()
	p.cache[subjectID] = attr
	p.expiry[subjectID] = time.Now().Add(p.cacheTTL)
	p.mu.Unlock()

	return attr, nil
}
