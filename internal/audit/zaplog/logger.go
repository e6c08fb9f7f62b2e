// Package zaplog implements the authz.AuditLogger interface with structured
// zap output. It is one caller-side sink for decision traces; the engine
// itself only ever hands the trace back as a value.
package zaplog

import (
	"context"

	"go.uber.org/zap"

	"github.com/authchain/authchain/internal/metrics"
	"github.com/authchain/authchain/pkg/authz"
)

// Logger implements authz.AuditLogger with output to a zap logger.
type Logger struct {
	log *zap.Logger
}

var _ authz.AuditLogger = (*Logger)(nil)

// New creates a new audit logger writing through log.
func New(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

// LogDecision implements authz.AuditLogger. Every surfaced decision also
// feeds the decision metrics, since the audit sink is the one choke point
// that sees them all.
func (l *Logger) LogDecision(ctx context.Context, subject authz.Subject, object authz.Object, result authz.Result) error {
	metrics.ObserveDecision(result)

	steps := make([]string, len(result.Trace.Steps))
	for i, step := range result.Trace.Steps {
		steps[i] = step.Evaluator + "=" + step.Decision.String()
	}

	l.log.Info("authorization decision",
		zap.String("trace_id", result.TraceID),
		zap.String("policy", result.PolicyID),
		zap.String("decision", result.Decision.String()),
		zap.String("subject", subject.ID),
		zap.String("tier", string(subject.Tier)),
		zap.Bool("admin", subject.Admin),
		zap.String("visibility", string(object.Visibility)),
		zap.String("owner", object.Owner),
		zap.Strings("trace", steps),
		zap.Duration("eval_duration", result.EvalDuration),
	)
	return nil
}

// LogSystemError implements authz.AuditLogger.
func (l *Logger) LogSystemError(ctx context.Context, systemError error, subjectID, policyID string) error {
	l.log.Error("authorization system error",
		zap.String("subject", subjectID),
		zap.String("policy", policyID),
		zap.Error(systemError),
	)
	return nil
}
