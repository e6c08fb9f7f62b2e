// Package rules is the catalog of reusable named evaluators that calling
// code assembles into policies. New access rules are added by writing new
// pure functions here and building new chains; the decision and combinator
// machinery in pkg/authz never changes for that.
package rules

import "github.com/authchain/authchain/pkg/authz"

// BanChecker is the read-only lookup capability behind DenyBanned. The ban
// set is owned by the caller's environment and injected at policy
// construction time; any refresh or caching of it happens there, never
// inside an evaluator call.
type BanChecker interface {
	IsBanned(subjectID string) bool
}

// AllowAdmins allows administrative subjects and abstains for everyone else.
func AllowAdmins() authz.Evaluator {
	return authz.NewEvaluator(
		"allow_admins",
		"Administrative subjects may access any object",
		func(s authz.Subject, _ authz.Object) authz.Decision {
			if s.Admin {
				return authz.Allow
			}
			return authz.Abstain
		},
	)
}

// DenyBanned denies subjects found in the injected ban set and abstains for
// everyone else.
func DenyBanned(bans BanChecker) authz.Evaluator {
	return authz.NewEvaluator(
		"deny_banned",
		"Subjects on the ban set are denied access to any object",
		func(s authz.Subject, _ authz.Object) authz.Decision {
			if bans.IsBanned(s.ID) {
				return authz.Deny
			}
			return authz.Abstain
		},
	)
}

// OwnerCanAccess allows a subject to access objects it owns and abstains
// otherwise.
func OwnerCanAccess() authz.Evaluator {
	return authz.NewEvaluator(
		"owner_can_access",
		"A subject may access objects it owns",
		func(s authz.Subject, o authz.Object) authz.Decision {
			if s.ID != "" && s.ID == o.Owner {
				return authz.Allow
			}
			return authz.Abstain
		},
	)
}

// AllowByVisibility resolves access from the object's visibility tier:
// public objects are allowed for everyone, premium objects for premium-tier
// subjects. A tier mismatch on a premium object abstains rather than denies,
// so a later rule (for example FreePremiumAccess) keeps the chance to allow.
// Private objects abstain here because ownership is decided elsewhere, and
// any visibility variant this rule does not recognise abstains; use
// Policy.CheckVisibilityCoverage to assert every variant in use is resolved
// somewhere in the chain.
func AllowByVisibility() authz.Evaluator {
	return authz.NewEvaluator(
		"allow_by_visibility",
		"Resolve access from the object's visibility tier",
		func(s authz.Subject, o authz.Object) authz.Decision {
			switch o.Visibility {
			case authz.VisibilityPublic:
				return authz.Allow
			case authz.VisibilityPremium:
				if s.Tier == authz.TierPremium {
					return authz.Allow
				}
				return authz.Abstain
			case authz.VisibilityPrivate:
				return authz.Abstain
			default:
				return authz.Abstain
			}
		},
	)
}

// FreePremiumAccess is the promotional override: it allows any subject to
// access premium objects and abstains for every other visibility. Insert it
// before AllowByVisibility to open premium content during a promotion.
func FreePremiumAccess() authz.Evaluator {
	return authz.NewEvaluator(
		"free_premium_access",
		"Promotional override granting premium objects to all subjects",
		func(_ authz.Subject, o authz.Object) authz.Decision {
			if o.Visibility == authz.VisibilityPremium {
				return authz.Allow
			}
			return authz.Abstain
		},
	)
}

// DenyAll denies everything. Useful as a policy terminator when the caller
// wants fail-closed behavior expressed in the chain itself rather than via
// the IsAllowed default.
func DenyAll() authz.Evaluator {
	return authz.NewEvaluator(
		"deny_all",
		"Unconditionally deny",
		func(_ authz.Subject, _ authz.Object) authz.Decision {
			return authz.Deny
		},
	)
}
