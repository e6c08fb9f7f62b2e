// Package memory provides an in-memory ban set. The engine never owns ban
// data: callers load the set from wherever their environment keeps it and
// inject it into DenyBanned as a read-only capability.
package memory

import "github.com/authchain/authchain/pkg/authz/rules"

// Set is an immutable snapshot of banned subject ids.
type Set struct {
	members map[string]struct{}
}

var _ rules.BanChecker = (*Set)(nil)

// New builds a Set from the given subject ids. The input slice is copied; the
// returned Set never changes, so it is safe to share across concurrent
// decision calls without locking. Replacing the ban list means building a new
// Set and constructing a new policy around it.
func New(subjectIDs ...string) *Set {
	members := make(map[string]struct{}, len(subjectIDs))
	for _, id := range subjectIDs {
		members[id] = struct{}{}
	}
	return &Set{members: members}
}

// IsBanned implements rules.BanChecker.
func (s *Set) IsBanned(subjectID string) bool {
	_, banned := s.members[subjectID]
	return banned
}

// Len returns the number of banned subjects.
func (s *Set) Len() int {
	return len(s.members)
}
