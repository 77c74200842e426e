package domain

import "errors"

// Validation failures are surfaced to the submitting connection only and
// never affect other participants or the room itself.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrNotHost             = errors.New("only the host can do this")
	ErrInsufficientPlayers = errors.New("at least 3 players are required")
	ErrNoConnectedHuman    = errors.New("at least 1 connected human player is required")
	ErrInvalidPhase        = errors.New("action not allowed in the current phase")
	ErrActorNotEligible    = errors.New("actor is dead, has the wrong role or already acted")
	ErrTargetNotEligible   = errors.New("target is not eligible for this action")
	ErrUnknownParticipant  = errors.New("unknown participant")
	ErrRoomClosed          = errors.New("room is closed")
)
