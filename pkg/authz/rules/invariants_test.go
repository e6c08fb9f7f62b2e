package rules

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authchain/authchain/pkg/authz"
)

// Randomized invariant harness. Generators are seeded so failures reproduce;
// bump the iteration count locally when hunting for counterexamples.

const invariantIterations = 500

func randomSubject(rng *rand.Rand, ids []string) authz.Subject {
	tier := authz.TierBasic
	if rng.Intn(2) == 0 {
		tier = authz.TierPremium
	}
	return authz.Subject{
		ID:    ids[rng.Intn(len(ids))],
		Tier:  tier,
		Admin: rng.Intn(4) == 0,
	}
}

func randomObject(rng *rand.Rand, ids []string) authz.Object {
	visibilities := []authz.Visibility{
		authz.VisibilityPublic,
		authz.VisibilityPremium,
		authz.VisibilityPrivate,
		authz.Visibility("embargoed"),
	}
	return authz.Object{
		Visibility: visibilities[rng.Intn(len(visibilities))],
		Owner:      ids[rng.Intn(len(ids))],
	}
}

func TestInvariantAdminBypass(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ids := []string{"alice", "bob", "carol", "dave"}

	// Half the id space is banned: admin bypass must hold regardless.
	p, err := Baseline(bans("alice", "carol"))
	require.NoError(t, err)

	for i := 0; i < invariantIterations; i++ {
		s := randomSubject(rng, ids)
		s.Admin = true
		o := randomObject(rng, ids)

		if !authz.IsAllowed(p, s, o, false) {
			t.Fatalf("admin bypass violated for subject %+v, object %+v", s, o)
		}
	}
}

func TestInvariantBannedNonAdminNeverAllowed(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	ids := []string{"alice", "bob", "carol", "dave"}

	p, err := Baseline(bans(ids...))
	require.NoError(t, err)

	for i := 0; i < invariantIterations; i++ {
		s := randomSubject(rng, ids)
		s.Admin = false
		o := randomObject(rng, ids)

		if authz.IsAllowed(p, s, o, true) {
			t.Fatalf("banned subject allowed: subject %+v, object %+v", s, o)
		}
	}
}

func TestInvariantEvaluatorDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ids := []string{"alice", "bob", "carol", "dave"}

	evaluators := []authz.Evaluator{
		AllowAdmins(),
		DenyBanned(bans("carol")),
		OwnerCanAccess(),
		AllowByVisibility(),
		FreePremiumAccess(),
		DenyAll(),
	}

	for i := 0; i < invariantIterations; i++ {
		s := randomSubject(rng, ids)
		o := randomObject(rng, ids)

		for _, e := range evaluators {
			first := e.Evaluate(s, o)
			second := e.Evaluate(s, o)
			if first != second {
				t.Fatalf("evaluator %s not deterministic for subject %+v, object %+v: %s then %s",
					e.Describe().ID, s, o, first, second)
			}
		}
	}
}

func TestInvariantFirstDecisiveAllAbstain(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	c := authz.FirstDecisive()

	for length := 0; length < 20; length++ {
		decisions := make([]authz.Decision, length)
		assert.Equal(t, authz.Abstain, c.Combine(decisions),
			fmt.Sprintf("all-abstain sequence of length %d", length))
	}

	// And a decisive opinion anywhere flips the result away from Abstain.
	for i := 0; i < invariantIterations; i++ {
		length := 1 + rng.Intn(10)
		decisions := make([]authz.Decision, length)
		pos := rng.Intn(length)
		want := authz.Allow
		if rng.Intn(2) == 0 {
			want = authz.Deny
		}
		decisions[pos] = want
		assert.Equal(t, want, c.Combine(decisions))
	}
}
