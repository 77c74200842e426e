package domain

// Participant is a seat in a room: a human player, a human placeholder
// added by the host, or a computer player. IDs are assigned in join order
// and never reused within a room's lifetime.
type Participant struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`

	// ConnID is the owning connection, empty while disconnected.
	// Disconnected participants stay in the game and can be targeted,
	// they just cannot submit actions.
	ConnID string `json:"-"`

	// Role is empty until the game starts, immutable afterwards.
	Role Role `json:"-"`

	Alive bool `json:"alive"`

	// ActedThisPhase guards one action per phase. During the day it
	// doubles as the has-voted flag.
	ActedThisPhase bool `json:"-"`
}

// Connected reports whether a transport session currently owns this seat
func (p *Participant) Connected() bool {
	return p.ConnID != ""
}

// ActiveHuman reports whether this seat is a connected human player
func (p *Participant) ActiveHuman() bool {
	return p.Kind == KindHuman && p.Connected()
}

// ParticipantView is the participant snapshot broadcast to clients
type ParticipantView struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Alive     bool   `json:"alive"`
	Kind      Kind   `json:"kind"`
	Connected bool   `json:"connected"`
}

// View returns the public snapshot of this participant
func (p *Participant) View() ParticipantView {
	return ParticipantView{
		ID:        p.ID,
		Name:      p.Name,
		Alive:     p.Alive,
		Kind:      p.Kind,
		Connected: p.Connected(),
	}
}
