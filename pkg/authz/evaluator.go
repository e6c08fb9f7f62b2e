package authz

// Schema provides metadata about an Evaluator or an AttributeProvider.
type Schema struct {
	ID          string
	Description string
}

// Evaluator answers one narrow authorization question about a subject/object
// pair. Implementations must be pure: no side effects, and equal inputs must
// always yield the same Decision. An evaluator returns Abstain whenever its
// question does not apply to the given pair; returning Deny for an
// inapplicable rule is a policy bug, because it robs later evaluators of the
// chance to allow.
//
// Authorization outcomes are never errors. An evaluator that needs external
// data receives it as a read-only capability at construction time and must
// not fetch or refresh it during Evaluate.
type Evaluator interface {
	Describe() Schema
	Evaluate(Subject, Object) Decision
}

// funcEvaluator adapts a pure function to the Evaluator interface.
type funcEvaluator struct {
	schema Schema
	fn     func(Subject, Object) Decision
}

var _ Evaluator = (*funcEvaluator)(nil)

// NewEvaluator wraps fn as a named Evaluator.
func NewEvaluator(id, description string, fn func(Subject, Object) Decision) Evaluator {
	return &funcEvaluator{
		schema: Schema{ID: id, Description: description},
		fn:     fn,
	}
}

// Describe implements Evaluator.
func (e *funcEvaluator) Describe() Schema {
	return e.schema
}

// Evaluate implements Evaluator.
func (e *funcEvaluator) Evaluate(s Subject, o Object) Decision {
	return e.fn(s, o)
}
