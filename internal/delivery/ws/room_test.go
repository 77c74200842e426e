package ws

import (
	"strings"
	"testing"
	"time"

	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
	"github.com/mmuslimabdulj/goat-wolf/internal/game"
)

func testManager() *RoomManager {
	cfg := game.Config{
		NightActionWindow: 50 * time.Millisecond,
		DayVoteWindow:     50 * time.Millisecond,
		PhaseDelay:        5 * time.Millisecond,
		ResolveDelay:      5 * time.Millisecond,
	}
	return NewRoomManager(cfg, domain.MaxMessageSize, domain.MaxHistorySize)
}

func TestGenerateRoomCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateRoomCode()
		if len(code) != roomCodeLength {
			t.Fatalf("code %q has wrong length", code)
		}
		for _, r := range code {
			if !strings.ContainsRune(roomCodeAlphabet, r) {
				t.Fatalf("code %q contains invalid rune %q", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 90 {
		t.Fatalf("codes collide far too often: %d unique of 100", len(seen))
	}
}

func TestCreateAndLookupRoom(t *testing.T) {
	rm := testManager()

	hub := rm.CreateRoom()
	if hub.Game() == nil {
		t.Fatal("room created without an engine")
	}
	if rm.RoomCount() != 1 {
		t.Fatalf("expected 1 room, got %d", rm.RoomCount())
	}

	// lookup is case and whitespace insensitive
	if rm.GetRoom(" "+strings.ToLower(hub.Code())+" ") != hub {
		t.Fatal("normalized lookup failed")
	}
	if rm.GetRoom("ZZZZZ") != nil {
		t.Fatal("lookup of unknown code should be nil")
	}

	rm.DeleteRoom(hub.Code())
	if rm.RoomExists(hub.Code()) {
		t.Fatal("room should be gone after delete")
	}
}
