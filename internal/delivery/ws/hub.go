package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
	"github.com/mmuslimabdulj/goat-wolf/internal/game"
	"github.com/mmuslimabdulj/goat-wolf/internal/usecase"
)

// Hub owns the websocket side of one room: the connected clients and the
// replayable message history. It is the engine's Notifier, so engine
// callbacks arrive here while the engine holds its own lock. The hub
// therefore never calls back into the engine from those paths, and hub
// handlers release h.mu before calling any engine method.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	history *RingBuffer
	closed  bool

	code           string
	manager        *RoomManager
	game           *game.Room
	seatNames      *usecase.SeatNamer
	maxMessageSize int
	log            zerolog.Logger
}

func newHub(code string, manager *RoomManager, maxMessageSize, historySize int) *Hub {
	return &Hub{
		clients:        make(map[string]*Client),
		history:        NewRingBuffer(historySize),
		seatNames:      usecase.NewSeatNamer(),
		code:           code,
		manager:        manager,
		maxMessageSize: maxMessageSize,
		log:            log.With().Str("room", code).Logger(),
	}
}

// Game returns the engine room behind this hub
func (h *Hub) Game() *game.Room {
	return h.game
}

// Code returns the room code
func (h *Hub) Code() string {
	return h.code
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// AddClient attaches an upgraded connection to the room and replays the
// chat history to it. Returns false if the room closed underneath.
func (h *Hub) AddClient(c *Client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.clients[c.ID] = c
	for _, frame := range h.history.GetAll() {
		c.Send(frame)
	}
	h.mu.Unlock()

	h.game.ConnOpened(c.ID)
	h.log.Debug().Str("conn", c.ID).Msg("client attached")
	return true
}

// ClientClosed detaches a dropped connection and tells the engine
func (h *Hub) ClientClosed(c *Client) {
	c.Close()

	h.mu.Lock()
	if _, ok := h.clients[c.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.ID)
	wasClosed := h.closed
	h.mu.Unlock()

	if !wasClosed {
		h.game.ConnClosed(c.ID)
	}
}

// Broadcast implements game.Notifier
func (h *Hub) Broadcast(msg domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	switch msg.Type {
	case domain.MessageTypeChat, domain.MessageTypeSystem,
		domain.MessageTypePhaseChange, domain.MessageTypeGameOver:
		h.history.Add(data)
	}
	for _, c := range h.clients {
		c.Send(data)
	}
	h.mu.Unlock()
}

// NotifyConn implements game.Notifier
func (h *Hub) NotifyConn(connID string, msg domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()
	if ok {
		c.Send(data)
	}
}

// RoomClosed implements game.Notifier. The engine already broadcast the
// closing message, so this only drops the clients and the registry entry.
func (h *Hub) RoomClosed(reason string) {
	h.mu.Lock()
	h.closed = true
	dropped := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		dropped = append(dropped, c)
	}
	h.clients = make(map[string]*Client)
	h.mu.Unlock()

	for _, c := range dropped {
		c.Close()
	}
	h.manager.DeleteRoom(h.code)
	h.log.Info().Str("reason", reason).Int("clients", len(dropped)).Msg("hub released")
}

// route dispatches one inbound frame to the engine
func (h *Hub) route(c *Client, t domain.MessageType, payload json.RawMessage) {
	switch t {
	case domain.MessageTypeRegister:
		var p domain.RegisterPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			h.sendError(c, "format pesan tidak valid")
			return
		}
		id, err := h.game.Register(c.ID, SanitizeName(p.Name), p.Kind)
		if err != nil {
			h.sendError(c, err.Error())
			return
		}
		h.sendTo(c, domain.NewMessage(domain.MessageTypeRegistered,
			domain.RegisteredPayload{ParticipantID: id}))

	case domain.MessageTypeAddSeat:
		var p domain.AddSeatPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			h.sendError(c, "format pesan tidak valid")
			return
		}
		name := SanitizeName(p.Name)
		generated := false
		if name == "" && p.Kind != domain.KindHuman {
			name = h.seatNames.Generate()
			generated = true
		}
		if _, err := h.game.AddSeat(c.ID, name, p.Kind); err != nil {
			if generated {
				h.seatNames.Release(name)
			}
			h.sendError(c, err.Error())
		}

	case domain.MessageTypeStartGame:
		if err := h.game.Start(c.ID); err != nil {
			h.sendError(c, err.Error())
		}

	case domain.MessageTypeVote, domain.MessageTypeWerewolfKill,
		domain.MessageTypeDoctorProtect, domain.MessageTypeSeerReveal:
		var p domain.ActionPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			h.sendError(c, "format pesan tidak valid")
			return
		}
		act := domain.Action{
			Type:     domain.ActionType(t),
			ActorID:  p.ActorID,
			TargetID: p.TargetID,
		}
		if err := h.game.SubmitAction(c.ID, act); err != nil {
			h.sendError(c, err.Error())
		}

	case domain.MessageTypeChat:
		var p domain.ChatPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			h.sendError(c, "format pesan tidak valid")
			return
		}
		text := SanitizeChat(p.Text)
		if text == "" {
			return
		}
		if err := h.game.Chat(c.ID, p.SenderID, text); err != nil {
			h.sendError(c, err.Error())
		}

	case domain.MessageTypeRestartGame:
		if err := h.game.Restart(c.ID); err != nil {
			h.sendError(c, err.Error())
		}

	default:
		h.sendError(c, "tipe pesan tidak dikenali")
	}
}

func (h *Hub) sendTo(c *Client, msg domain.Message) {
	if data, err := json.Marshal(msg); err == nil {
		c.Send(data)
	}
}

func (h *Hub) sendError(c *Client, reason string) {
	h.sendTo(c, domain.NewMessage(domain.MessageTypeActionError,
		domain.ActionErrorPayload{Reason: reason}))
}
