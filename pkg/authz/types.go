package authz

// Tier classifies a subject's service level.
type Tier string

const (
	TierBasic   Tier = "basic"
	TierPremium Tier = "premium"
)

// Visibility classifies who may see an object. The set is open: values beyond
// the constants below are legal, and evaluators that do not recognise a
// variant must abstain. Policy.CheckVisibilityCoverage verifies that every
// variant a deployment actually uses is resolved by at least one evaluator.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPremium Visibility = "premium"
	VisibilityPrivate Visibility = "private"
)

// Subject is the requesting identity. Immutable per decision; the caller
// supplies a fresh value on every call.
type Subject struct {
	ID    string
	Tier  Tier
	Admin bool
}

// Object is the resource being accessed. Immutable per decision.
type Object struct {
	Visibility Visibility
	Owner      string
}
