package authz

import "context"

// AuditLogger persists decision and error information.
type AuditLogger interface {
	// LogDecision records the outcome of a decision call.
	// subject, object: the inputs given to DecideTraced.
	// result: the Result returned by DecideTraced, including the trace.
	LogDecision(ctx context.Context, subject Subject, object Object, result Result) error

	// LogSystemError records failures occurring outside decision evaluation,
	// for example attribute collection or policy construction errors.
	// policyID: identifier if available at the time of error.
	LogSystemError(ctx context.Context, systemError error, subjectID, policyID string) error
}
