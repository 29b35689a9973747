package domain

import "slices"

// Activity is a school club or sport together with its current roster.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	// Participants holds student emails in signup order. max_participants is
	// not enforced against it.
	Participants []string
}

// Clone returns a copy whose participant slice does not alias the receiver's.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// HasParticipant reports whether email is on the roster. Matching is exact.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}
