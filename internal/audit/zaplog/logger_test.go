package zaplog

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/authchain/authchain/pkg/authz"
)

func TestLogger(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	logger := New(zap.New(core))
	ctx := context.Background()

	t.Run("LogDecision", func(t *testing.T) {
		result := authz.Result{
			TraceID:  "trace-1",
			PolicyID: "baseline",
			Decision: authz.Deny,
			Trace: authz.Trace{Steps: []authz.Step{
				{Evaluator: "allow_admins", Decision: authz.Abstain},
				{Evaluator: "deny_banned", Decision: authz.Deny},
			}},
		}

		err := logger.LogDecision(ctx,
			authz.Subject{ID: "carol", Tier: authz.TierBasic},
			authz.Object{Visibility: authz.VisibilityPublic, Owner: "carol"},
			result,
		)
		if err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}

		entries := observed.TakeAll()
		if len(entries) != 1 {
			t.Fatalf("Expected 1 log entry, got %d", len(entries))
		}
		fields := entries[0].ContextMap()
		if fields["decision"] != "deny" {
			t.Errorf("Expected decision field 'deny', got: %v", fields["decision"])
		}
		if fields["policy"] != "baseline" {
			t.Errorf("Expected policy field 'baseline', got: %v", fields["policy"])
		}
	})

	t.Run("LogSystemError", func(t *testing.T) {
		err := logger.LogSystemError(ctx, errors.New("test error"), "carol", "baseline")
		if err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}

		err = logger.LogSystemError(ctx, authz.ErrAttributeStale, "carol", "baseline")
		if err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}

		if observed.FilterLevelExact(zap.ErrorLevel).Len() != 2 {
			t.Errorf("Expected 2 error entries")
		}
	})
}
