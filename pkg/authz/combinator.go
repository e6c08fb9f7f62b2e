package authz

// Combinator reduces the ordered sequence of decisions produced by a policy's
// evaluator chain into one final Decision. Combinators are total over finite
// sequences and must define a result for the empty sequence (all three
// standard combinators return Abstain for it).
type Combinator interface {
	Name() string
	Combine([]Decision) Decision
}

type firstDecisive struct{}

// FirstDecisive returns the chain-of-responsibility combinator: the first
// non-Abstain decision in sequence order wins; if every evaluator abstained,
// the result is Abstain.
func FirstDecisive() Combinator { return firstDecisive{} }

func (firstDecisive) Name() string { return "first_decisive" }

func (firstDecisive) Combine(decisions []Decision) Decision {
	for _, d := range decisions {
		if d.Decisive() {
			return d
		}
	}
	return Abstain
}

type unanimous struct{}

// Unanimous returns the consensus combinator: Deny if any decision is Deny;
// Allow only when at least one decision is decisive and every decisive
// decision is Allow; Abstain when all abstained.
func Unanimous() Combinator { return unanimous{} }

func (unanimous) Name() string { return "unanimous" }

func (unanimous) Combine(decisions []Decision) Decision {
	sawAllow := false
	for _, d := range decisions {
		switch d {
		case Deny:
			return Deny
		case Allow:
			sawAllow = true
		}
	}
	if sawAllow {
		return Allow
	}
	return Abstain
}

type anyDenyWins struct{}

// AnyDenyWins returns the veto combinator: Deny if any decision is Deny,
// otherwise FirstDecisive semantics over the remainder.
func AnyDenyWins() Combinator { return anyDenyWins{} }

func (anyDenyWins) Name() string { return "any_deny_wins" }

func (anyDenyWins) Combine(decisions []Decision) Decision {
	first := Abstain
	for _, d := range decisions {
		if d == Deny {
			return Deny
		}
		if d.Decisive() && !first.Decisive() {
			first = d
		}
	}
	return first
}
