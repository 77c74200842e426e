package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mmuslimabdulj/goat-wolf/internal/config"
	"github.com/mmuslimabdulj/goat-wolf/internal/delivery/ws"
	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
)

// Handler serves the room REST API and the websocket upgrade endpoint
type Handler struct {
	rooms    *ws.RoomManager
	upgrader websocket.Upgrader
}

func NewHandler(rm *ws.RoomManager, cfg *config.Config) *Handler {
	allowed := cfg.AllowedOrigins
	return &Handler{
		rooms: rm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return isOriginAllowed(r.Header.Get("Origin"), allowed)
			},
		},
	}
}

// isOriginAllowed checks the origin against the configured allow list.
// An empty origin is a same-origin or non-browser request and passes.
func isOriginAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// HandleCreateRoom creates a new room and returns its shareable code
func (h *Handler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hub := h.rooms.CreateRoom()
	log.Info().Str("room", hub.Code()).Msg("room created")

	writeJSON(w, http.StatusOK, map[string]string{
		"code": hub.Code(),
	})
}

// HandleJoinRoom validates a room code before the client opens a socket
func (h *Handler) HandleJoinRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	hub := h.rooms.GetRoom(req.Code)
	if hub == nil {
		log.Debug().Str("code", req.Code).Err(domain.ErrRoomNotFound).Msg("join rejected")
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "Ruangan tidak ditemukan",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"code":  hub.Code(),
		"phase": string(hub.Game().Phase()),
	})
}

// HandleHealth reports liveness and the active room count
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"rooms":  h.rooms.RoomCount(),
	})
}

// HandleWebSocket upgrades the connection and attaches it to a room
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("room")
	if code == "" {
		http.Error(w, "Room code required", http.StatusBadRequest)
		return
	}

	hub := h.rooms.GetRoom(code)
	if hub == nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(hub, conn)
	if !hub.AddClient(client) {
		// Room closed between lookup and upgrade
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
