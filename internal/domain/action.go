package domain

// ActionType tags the kind of action a participant submits
type ActionType string

const (
	ActionVote          ActionType = "vote"
	ActionWerewolfKill  ActionType = "werewolf_kill"
	ActionDoctorProtect ActionType = "doctor_protect"
	ActionSeerReveal    ActionType = "seer_reveal"
)

// Action is a validated-before-mutation submission: who does what to whom.
// The type is checked against the current phase and the actor's role before
// any state changes.
type Action struct {
	Type     ActionType
	ActorID  int
	TargetID int
}

// NightRole returns the role required to submit this action during the
// night phase. Votes are day actions and have no night role.
func (t ActionType) NightRole() (Role, bool) {
	switch t {
	case ActionWerewolfKill:
		return RoleWerewolf, true
	case ActionDoctorProtect:
		return RoleDoctor, true
	case ActionSeerReveal:
		return RoleSeer, true
	}
	return "", false
}
