package authz

import (
	"time"

	"github.com/google/uuid"
)

// Step records one evaluator's opinion within a decision trace.
type Step struct {
	Evaluator string
	Decision  Decision
}

// Trace is the ordered record of every evaluator opinion produced during one
// decision. It is a plain value; writing it anywhere is the caller's job.
type Trace struct {
	Steps []Step
}

// DecisiveCount returns the number of steps that expressed an opinion.
func (t Trace) DecisiveCount() int {
	n := 0
	for _, s := range t.Steps {
		if s.Decision.Decisive() {
			n++
		}
	}
	return n
}

// AbstainCount returns the number of steps that abstained.
func (t Trace) AbstainCount() int {
	return len(t.Steps) - t.DecisiveCount()
}

// Result pairs a final decision with its trace and audit metadata.
type Result struct {
	// TraceID uniquely identifies this decision for audit correlation.
	TraceID string
	// PolicyID identifies the policy that produced the decision.
	PolicyID string
	Decision Decision
	Trace    Trace
	// EvalDuration is the time taken to walk the chain and combine.
	EvalDuration time.Duration
}

// Decide runs the policy's evaluator chain against the subject/object pair
// and combines the resulting opinions. Every evaluator is consulted in
// sequence order before the combinator sees the decisions; short-circuiting,
// if any, is the combinator's own optimization over the collected sequence.
// Decide is a pure function: it owns no state and is safe to call from any
// number of goroutines.
func Decide(p Policy, s Subject, o Object) Decision {
	decisions := make([]Decision, len(p.evaluators))
	for i, e := range p.evaluators {
		decisions[i] = e.Evaluate(s, o)
	}
	return p.combinator.Combine(decisions)
}

// DecideTraced is Decide with a full per-evaluator trace for auditing.
func DecideTraced(p Policy, s Subject, o Object) Result {
	start := time.Now()

	decisions := make([]Decision, len(p.evaluators))
	steps := make([]Step, len(p.evaluators))
	for i, e := range p.evaluators {
		d := e.Evaluate(s, o)
		decisions[i] = d
		steps[i] = Step{Evaluator: e.Describe().ID, Decision: d}
	}

	return Result{
		TraceID:      uuid.NewString(),
		PolicyID:     p.id,
		Decision:     p.combinator.Combine(decisions),
		Trace:        Trace{Steps: steps},
		EvalDuration: time.Since(start),
	}
}

// IsAllowed maps the policy's decision to a boolean: Allow is true, Deny is
// false, and Abstain resolves to defaultOnAbstain. The default is an explicit
// argument because "what happens when nobody has an opinion" is itself a
// security-relevant policy choice; the engine never bakes one in.
func IsAllowed(p Policy, s Subject, o Object, defaultOnAbstain bool) bool {
	switch Decide(p, s, o) {
	case Allow:
		return true
	case Deny:
		return false
	default:
		return defaultOnAbstain
	}
}
