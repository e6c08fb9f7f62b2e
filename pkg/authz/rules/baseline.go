package rules

import "github.com/authchain/authchain/pkg/authz"

// Baseline assembles the reference access policy: admin bypass first, then
// the ban check, then ownership, then visibility, resolved first-decisive.
// The ban check precedes the ownership rule on purpose: a banned owner must
// be denied, and chain order is what encodes that (see the ordering tests).
func Baseline(bans BanChecker) (authz.Policy, error) {
	return authz.NewPolicy(
		"baseline",
		authz.FirstDecisive(),
		AllowAdmins(),
		DenyBanned(bans),
		OwnerCanAccess(),
		AllowByVisibility(),
	)
}

// Promotional is Baseline with FreePremiumAccess inserted ahead of the
// visibility rule, granting premium objects to all subjects for the duration
// of a promotion. It builds a new policy value; Baseline itself is untouched.
func Promotional(bans BanChecker) (authz.Policy, error) {
	base, err := Baseline(bans)
	if err != nil {
		return authz.Policy{}, err
	}
	p, err := base.InsertBefore("allow_by_visibility", FreePremiumAccess())
	if err != nil {
		return authz.Policy{}, err
	}
	// Rename so audit records distinguish the two strategies.
	return authz.NewPolicy("baseline_promotional", p.Combinator(), p.Evaluators()...)
}
