package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mmuslimabdulj/goat-wolf/internal/config"
	"github.com/mmuslimabdulj/goat-wolf/internal/delivery/ws"
	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
	"github.com/mmuslimabdulj/goat-wolf/internal/game"
)

func testHandler() (*Handler, *ws.RoomManager) {
	cfg := config.DefaultConfig()
	cfg.AllowedOrigins = []string{"*"}
	gameCfg := game.Config{
		NightActionWindow: 50 * time.Millisecond,
		DayVoteWindow:     50 * time.Millisecond,
		PhaseDelay:        5 * time.Millisecond,
		ResolveDelay:      5 * time.Millisecond,
	}
	rm := ws.NewRoomManager(gameCfg, cfg.MaxMessageSize, cfg.MaxHistorySize)
	return NewHandler(rm, cfg), rm
}

func TestCreateRoom(t *testing.T) {
	h, rm := testHandler()

	rec := httptest.NewRecorder()
	h.HandleCreateRoom(rec, httptest.NewRequest(http.MethodPost, "/api/room/create", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp["code"]) != 5 {
		t.Fatalf("unexpected room code %q", resp["code"])
	}
	if !rm.RoomExists(resp["code"]) {
		t.Fatal("created room is not registered")
	}
}

func TestCreateRoomRejectsGet(t *testing.T) {
	h, _ := testHandler()

	rec := httptest.NewRecorder()
	h.HandleCreateRoom(rec, httptest.NewRequest(http.MethodGet, "/api/room/create", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestJoinRoom(t *testing.T) {
	h, rm := testHandler()
	hub := rm.CreateRoom()

	body, _ := json.Marshal(map[string]string{"code": strings.ToLower(hub.Code())})
	rec := httptest.NewRecorder()
	h.HandleJoinRoom(rec, httptest.NewRequest(http.MethodPost, "/api/room/join", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["code"] != hub.Code() || resp["phase"] != string(domain.PhaseSetup) {
		t.Fatalf("unexpected response %v", resp)
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	h, _ := testHandler()

	body, _ := json.Marshal(map[string]string{"code": "ZZZZZ"})
	rec := httptest.NewRecorder()
	h.HandleJoinRoom(rec, httptest.NewRequest(http.MethodPost, "/api/room/join", bytes.NewReader(body)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h, rm := testHandler()
	rm.CreateRoom()

	rec := httptest.NewRecorder()
	h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var resp struct {
		Status string `json:"status"`
		Rooms  int    `json:"rooms"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || resp.Rooms != 1 {
		t.Fatalf("unexpected health response %+v", resp)
	}
}

func TestWebSocketParamValidation(t *testing.T) {
	h, _ := testHandler()

	rec := httptest.NewRecorder()
	h.HandleWebSocket(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing room param should 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleWebSocket(rec, httptest.NewRequest(http.MethodGet, "/ws?room=ZZZZZ", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown room should 404, got %d", rec.Code)
	}
}

// readFrames splits a websocket message into its batched JSON frames
func readFrames(t *testing.T, conn *websocket.Conn) []domain.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var msgs []domain.Message
	for _, part := range bytes.Split(raw, []byte{'\n'}) {
		if len(part) == 0 {
			continue
		}
		var msg domain.Message
		if err := json.Unmarshal(part, &msg); err != nil {
			t.Fatalf("bad frame %q: %v", part, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func waitForType(t *testing.T, conn *websocket.Conn, want domain.MessageType) domain.Message {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, msg := range readFrames(t, conn) {
			if msg.Type == want {
				return msg
			}
		}
	}
	t.Fatalf("no %s frame arrived", want)
	return domain.Message{}
}

func TestWebSocketRegisterRoundtrip(t *testing.T) {
	h, rm := testHandler()
	hub := rm.CreateRoom()

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?room=" + hub.Code()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	payload, _ := json.Marshal(domain.RegisterPayload{Name: "Budi", Kind: domain.KindHuman})
	frame, _ := json.Marshal(map[string]json.RawMessage{
		"type":    json.RawMessage(`"register"`),
		"payload": payload,
	})
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatal(err)
	}

	reg := waitForType(t, conn, domain.MessageTypeRegistered)
	var p domain.RegisteredPayload
	if err := json.Unmarshal(reg.Payload, &p); err != nil {
		t.Fatal(err)
	}
	if p.ParticipantID != 0 {
		t.Fatalf("expected first seat, got %d", p.ParticipantID)
	}
}
