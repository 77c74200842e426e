package domain

import "time"

// ==== Game Constants ====

// MinPlayers is the minimum number of seats needed to start a game
const MinPlayers = 3

// MinHumans is the minimum number of connected human players needed to start
const MinHumans = 1

// MaxNameLength caps participant and room names (in runes)
const MaxNameLength = 50

// MaxChatLength caps a single chat line (in runes)
const MaxChatLength = 500

// ==== WebSocket Constants ====

// MaxMessageSize is the maximum allowed WebSocket message size in bytes
const MaxMessageSize = 4096

// MaxHistorySize is the maximum number of chat lines kept for replay
const MaxHistorySize = 200

// ==== Timing Constants ====

const (
	// NightActionWindow is how long human special roles get to act at night
	NightActionWindow = 30 * time.Second

	// DayVoteWindow is how long the village gets to vote
	DayVoteWindow = 60 * time.Second

	// PhaseDelay is the announcement pause between phases
	PhaseDelay = 3 * time.Second

	// ResolveDelay is the short pause between the last expected action
	// arriving and resolution running
	ResolveDelay = 1 * time.Second
)
