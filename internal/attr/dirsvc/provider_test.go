package dirsvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authchain/authchain/pkg/authz"
)

func TestProvider_Collect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/subjects/alice/attributes/tier":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"value": "premium"}) //nolint:errcheck
		case "/api/subjects/alice/attributes/admin":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"value": false}) //nolint:errcheck
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	tests := []struct {
		name      string
		attrID    string
		subjectID string
		wantValue any
		wantErr   bool
	}{
		{
			name:      "tier attribute",
			attrID:    authz.AttrTier,
			subjectID: "alice",
			wantValue: "premium",
		},
		{
			name:      "admin attribute",
			attrID:    authz.AttrAdmin,
			subjectID: "alice",
			wantValue: false,
		},
		{
			name:      "unknown subject",
			attrID:    authz.AttrTier,
			subjectID: "nobody",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider(tt.attrID, server.URL, 500*time.Millisecond, "Test description")

			attr, err := p.Collect(context.Background(), tt.subjectID)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, authz.IsWrappingError(err, authz.ErrAttributeSourceUnavailable))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.attrID, attr.ID())
			assert.Equal(t, tt.wantValue, attr.Value())
		})
	}
}

func TestProvider_CollectCaches(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"value": "basic"}) //nolint:errcheck
	}))
	defer server.Close()

	p := NewProvider(authz.AttrTier, server.URL, time.Minute, "Test description")

	for i := 0; i < 3; i++ {
		_, err := p.Collect(context.Background(), "alice")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), hits.Load())

	// A different subject misses the cache.
	_, err := p.Collect(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestProvider_CollectServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // shut it down before the provider calls it

	p := NewProvider(authz.AttrTier, server.URL, time.Minute, "Test description")

	_, err := p.Collect(context.Background(), "alice")
	require.Error(t, err)
	assert.True(t, authz.IsWrappingError(err, authz.ErrAttributeSourceUnavailable))
}
