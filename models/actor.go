package models

// ActorKind tags which side of the portal invoked an operation.
type ActorKind int

const (
	ActorNone ActorKind = iota
	ActorCitizen
	ActorOfficial
)

// Actor is resolved once at the authentication boundary and passed explicitly into
// core operations. Exactly one of UserID (citizen) or AuthorityID (official) is set.
type Actor struct {
	Kind        ActorKind
	UserID      string
	AuthorityID string
}

func Citizen(userID string) Actor {
	return Actor{Kind: ActorCitizen, UserID: userID}
}

func Official(authorityID string) Actor {
	return Actor{Kind: ActorOfficial, AuthorityID: authorityID}
}

func (a Actor) IsCitizen() bool  { return a.Kind == ActorCitizen && a.UserID != "" }
func (a Actor) IsOfficial() bool { return a.Kind == ActorOfficial && a.AuthorityID != "" }
func (a Actor) Valid() bool      { return a.IsCitizen() || a.IsOfficial() }

// Role returns "user" or "official", the value stored in added_by fields.
func (a Actor) Role() string {
	switch {
	case a.IsCitizen():
		return "user"
	case a.IsOfficial():
		return "official"
	default:
		return ""
	}
}

// CanAccess reports whether the actor owns appointment a: the citizen who booked it,
// or an official of the authority it was booked with.
func (a Actor) CanAccess(appt *Appointment) bool {
	switch {
	case a.IsCitizen():
		return appt.UserID == a.UserID
	case a.IsOfficial():
		return appt.AuthorityID == a.AuthorityID
	default:
		return false
	}
}
