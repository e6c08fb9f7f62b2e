package authz

// Decision is the tri-state outcome of a single evaluator or of a whole
// policy: Allow, Deny, or Abstain (no opinion).
//
// The zero value is Abstain. Abstain is never directly actionable; it must be
// resolved by a Combinator or by the explicit default passed to IsAllowed
// before it can be surfaced as a boolean.
type Decision int

const (
	Abstain Decision = iota
	Allow
	Deny
)

// Decisive reports whether the decision expresses an opinion.
func (d Decision) Decisive() bool {
	return d != Abstain
}

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case Abstain:
		return "abstain"
	default:
		return "unknown"
	}
}
