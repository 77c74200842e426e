package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MessageType defines the type of message on the wire
type MessageType string

// Client -> server
const (
	MessageTypeRegister      MessageType = "register"
	MessageTypeAddSeat       MessageType = "add_seat"
	MessageTypeStartGame     MessageType = "start_game"
	MessageTypeVote          MessageType = "vote"
	MessageTypeWerewolfKill  MessageType = "werewolf_kill"
	MessageTypeDoctorProtect MessageType = "doctor_protect"
	MessageTypeSeerReveal    MessageType = "seer_reveal"
	MessageTypeChat          MessageType = "chat"
	MessageTypeRestartGame   MessageType = "restart_game"
)

// Server -> client
const (
	MessageTypeRegistered      MessageType = "registered"
	MessageTypeParticipantList MessageType = "participant_list"
	MessageTypeGameStarted     MessageType = "game_started"
	MessageTypeYourRole        MessageType = "your_role"        // private
	MessageTypeWerewolfBuddies MessageType = "werewolf_buddies" // private, werewolves only
	MessageTypePhaseChange     MessageType = "phase_change"
	MessageTypeActionRequest   MessageType = "action_request" // private
	MessageTypeActionOK        MessageType = "action_ok"      // private
	MessageTypeActionError     MessageType = "action_error"   // private
	MessageTypeSystem          MessageType = "system"
	MessageTypeGameOver        MessageType = "game_over"
	MessageTypeRoomClosed      MessageType = "room_closed"
)

// Message is the wire envelope for everything sent over a room's transport
type Message struct {
	ID        string          `json:"id"`
	Type      MessageType     `json:"type"`
	FromID    string          `json:"from_id,omitempty"`
	FromName  string          `json:"from_name,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewMessage builds an envelope with a fresh id and the payload marshalled.
// Payload types in this package only contain marshallable fields, so a
// marshal failure cannot happen for messages built by this module.
func NewMessage(t MessageType, payload any) Message {
	var raw json.RawMessage
	if payload != nil {
		raw, _ = json.Marshal(payload)
	}
	return Message{
		ID:        uuid.New().String(),
		Type:      t,
		Payload:   raw,
		CreatedAt: time.Now(),
	}
}

// RegisterPayload registers the sending connection as a participant
type RegisterPayload struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// AddSeatPayload creates an unconnected seat (host only)
type AddSeatPayload struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// ActionPayload carries a vote or night action submission
type ActionPayload struct {
	ActorID  int `json:"actor_id"`
	TargetID int `json:"target_id"`
}

// ChatPayload is the payload for chat messages
type ChatPayload struct {
	SenderID int    `json:"sender_id"`
	Text     string `json:"text"`
}

// RegisteredPayload confirms registration with the assigned participant id
type RegisteredPayload struct {
	ParticipantID int `json:"participant_id"`
}

// ParticipantListPayload is the full roster snapshot
type ParticipantListPayload struct {
	Participants []ParticipantView `json:"participants"`
}

// RolePayload privately tells a participant their role
type RolePayload struct {
	Role Role `json:"role"`
}

// BuddiesPayload privately tells a werewolf their packmates
type BuddiesPayload struct {
	Names []string `json:"names"`
}

// PhaseChangePayload announces a phase transition
type PhaseChangePayload struct {
	Phase Phase  `json:"phase"`
	Label string `json:"label"`
	Day   int    `json:"day"`
}

// TargetRef identifies an eligible target in an action request
type TargetRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ActionRequestPayload privately asks a participant to act
type ActionRequestPayload struct {
	Kind    ActionType  `json:"kind"`
	Targets []TargetRef `json:"targets"`
}

// ActionErrorPayload explains a rejected submission
type ActionErrorPayload struct {
	Reason string `json:"reason"`
}

// SystemPayload is a system announcement line
type SystemPayload struct {
	Text string `json:"text"`
}

// ChatLinePayload is a relayed chat line
type ChatLinePayload struct {
	Text string `json:"text"`
}

// GameOverPayload carries the terminal outcome text
type GameOverPayload struct {
	Outcome string `json:"outcome"`
}

// RoomClosedPayload tells clients the room is gone and why
type RoomClosedPayload struct {
	Reason string `json:"reason"`
}
