package ws

import (
	"crypto/rand"
	"strings"
	"sync"

	"github.com/mmuslimabdulj/goat-wolf/internal/game"
)

const (
	roomCodeLength   = 5
	roomCodeAlphabet = "ABCDEFGHIJKLMNPQRSTUVWXYZ123456789"
)

// RoomManager holds every active room keyed by its shareable code
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Hub

	gameCfg        game.Config
	maxMessageSize int
	historySize    int
}

// NewRoomManager creates a room manager. gameCfg sets the phase timings
// every new room starts with.
func NewRoomManager(gameCfg game.Config, maxMessageSize, historySize int) *RoomManager {
	return &RoomManager{
		rooms:          make(map[string]*Hub),
		gameCfg:        gameCfg,
		maxMessageSize: maxMessageSize,
		historySize:    historySize,
	}
}

// GenerateRoomCode returns a short shareable code. The alphabet skips O
// and 0 so codes survive being read out loud.
func GenerateRoomCode() string {
	buf := make([]byte, roomCodeLength)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
	}
	return string(buf)
}

// NormalizeCode maps user input to the canonical code form
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateRoom creates a room with a fresh unique code
func (rm *RoomManager) CreateRoom() *Hub {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	code := GenerateRoomCode()
	for _, exists := rm.rooms[code]; exists; _, exists = rm.rooms[code] {
		code = GenerateRoomCode()
	}

	hub := newHub(code, rm, rm.maxMessageSize, rm.historySize)
	hub.game = game.NewRoom(code, hub, rm.gameCfg, nil)
	rm.rooms[code] = hub
	return hub
}

// GetRoom returns the room for a code, nil if it does not exist
func (rm *RoomManager) GetRoom(code string) *Hub {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[NormalizeCode(code)]
}

// DeleteRoom removes a room from the registry
func (rm *RoomManager) DeleteRoom(code string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	delete(rm.rooms, NormalizeCode(code))
}

// RoomExists checks if a room exists
func (rm *RoomManager) RoomExists(code string) bool {
	return rm.GetRoom(code) != nil
}

// RoomCount returns the number of active rooms
func (rm *RoomManager) RoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}
