package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "deny", Deny.String())
	assert.Equal(t, "abstain", Abstain.String())
	assert.Equal(t, "unknown", Decision(42).String())

	// The zero value must be the safe no-opinion default.
	var d Decision
	assert.Equal(t, Abstain, d)
	assert.False(t, d.Decisive())
	assert.True(t, Allow.Decisive())
	assert.True(t, Deny.Decisive())
}

func TestFirstDecisive(t *testing.T) {
	tests := []struct {
		name      string
		decisions []Decision
		want      Decision
	}{
		{name: "empty sequence", decisions: nil, want: Abstain},
		{name: "all abstain", decisions: []Decision{Abstain, Abstain, Abstain}, want: Abstain},
		{name: "first allow wins", decisions: []Decision{Abstain, Allow, Deny}, want: Allow},
		{name: "first deny wins", decisions: []Decision{Deny, Allow}, want: Deny},
		{name: "single allow", decisions: []Decision{Allow}, want: Allow},
	}

	c := FirstDecisive()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Combine(tt.decisions))
		})
	}
}

func TestUnanimous(t *testing.T) {
	tests := []struct {
		name      string
		decisions []Decision
		want      Decision
	}{
		{name: "empty sequence", decisions: nil, want: Abstain},
		{name: "all abstain", decisions: []Decision{Abstain, Abstain}, want: Abstain},
		{name: "allow abstain allow", decisions: []Decision{Allow, Abstain, Allow}, want: Allow},
		{name: "allow deny", decisions: []Decision{Allow, Deny}, want: Deny},
		{name: "deny after abstain", decisions: []Decision{Abstain, Deny}, want: Deny},
		{name: "single allow", decisions: []Decision{Allow}, want: Allow},
	}

	c := Unanimous()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Combine(tt.decisions))
		})
	}
}

func TestAnyDenyWins(t *testing.T) {
	tests := []struct {
		name      string
		decisions []Decision
		want      Decision
	}{
		{name: "empty sequence", decisions: nil, want: Abstain},
		{name: "all abstain", decisions: []Decision{Abstain, Abstain}, want: Abstain},
		{name: "deny beats earlier allow", decisions: []Decision{Allow, Abstain, Deny}, want: Deny},
		{name: "first decisive over remainder", decisions: []Decision{Abstain, Allow, Allow}, want: Allow},
		{name: "lone deny", decisions: []Decision{Deny}, want: Deny},
	}

	c := AnyDenyWins()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Combine(tt.decisions))
		})
	}
}

func TestCombinatorNames(t *testing.T) {
	assert.Equal(t, "first_decisive", FirstDecisive().Name())
	assert.Equal(t, "unanimous", Unanimous().Name())
	assert.Equal(t, "any_deny_wins", AnyDenyWins().Name())
}
