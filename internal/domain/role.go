package domain

// Role is a participant's assigned game role
type Role string

const (
	RoleWerewolf Role = "Werewolf"
	RoleVillager Role = "Villager"
	RoleDoctor   Role = "Doctor"
	RoleSeer     Role = "Seer"
)

// IsWerewolf reports whether the role belongs to the werewolf faction
func (r Role) IsWerewolf() bool {
	return r == RoleWerewolf
}

// Special reports whether the role acts during the night phase
func (r Role) Special() bool {
	switch r {
	case RoleWerewolf, RoleDoctor, RoleSeer:
		return true
	}
	return false
}

// Kind distinguishes human-driven seats from computer-driven ones
type Kind string

const (
	KindHuman    Kind = "human"
	KindComputer Kind = "computer"
)

// Valid reports whether the kind is one of the known values
func (k Kind) Valid() bool {
	return k == KindHuman || k == KindComputer
}
