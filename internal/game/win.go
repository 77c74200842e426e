package game

import "github.com/mmuslimabdulj/goat-wolf/internal/domain"

// Outcome is a terminal game result, or OutcomeNone to keep playing
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVillagersWin
	OutcomeWerewolvesWin
	OutcomeTooFewPlayers
)

// Terminal reports whether the outcome ends the game
func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

// Text returns the announcement shown to the room for this outcome
func (o Outcome) Text() string {
	switch o {
	case OutcomeVillagersWin:
		return "Selamat! Penduduk desa memenangkan permainan!"
	case OutcomeWerewolvesWin:
		return "Maaf! Werewolf memenangkan permainan!"
	case OutcomeTooFewPlayers:
		return "Permainan berakhir karena jumlah pemain terlalu sedikit untuk melanjutkan!"
	}
	return ""
}

// EvaluateWin inspects the alive-role distribution and returns the outcome.
// Check order matters and is fixed: a dead pack wins it for the village even
// when fewer than three players remain, and the wolves' parity win is ruled
// out before the too-few-players cutoff applies.
func EvaluateWin(participants []*domain.Participant) Outcome {
	var wolves, others int
	for _, p := range participants {
		if !p.Alive {
			continue
		}
		if p.Role.IsWerewolf() {
			wolves++
		} else {
			others++
		}
	}

	switch {
	case wolves == 0:
		return OutcomeVillagersWin
	case wolves >= others:
		return OutcomeWerewolvesWin
	case wolves+others < domain.MinPlayers:
		return OutcomeTooFewPlayers
	}
	return OutcomeNone
}
