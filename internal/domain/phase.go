package domain

// Phase is the room's position in the game state machine
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseNight    Phase = "night"
	PhaseDay      Phase = "day"
	PhaseGameOver Phase = "game_over"
)

// Label returns the display label shown to players for this phase
func (p Phase) Label() string {
	switch p {
	case PhaseSetup:
		return "Persiapan"
	case PhaseNight:
		return "Malam Hari (Aksi Peran)"
	case PhaseDay:
		return "Siang Hari (Diskusi & Voting)"
	case PhaseGameOver:
		return "Permainan Berakhir"
	}
	return string(p)
}
