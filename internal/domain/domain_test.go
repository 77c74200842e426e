package domain

import (
	"encoding/json"
	"testing"
)

func TestNightRole(t *testing.T) {
	tests := []struct {
		action ActionType
		role   Role
		ok     bool
	}{
		{ActionWerewolfKill, RoleWerewolf, true},
		{ActionDoctorProtect, RoleDoctor, true},
		{ActionSeerReveal, RoleSeer, true},
		{ActionVote, "", false},
	}
	for _, tt := range tests {
		role, ok := tt.action.NightRole()
		if role != tt.role || ok != tt.ok {
			t.Errorf("NightRole(%s) = (%s, %v), want (%s, %v)", tt.action, role, ok, tt.role, tt.ok)
		}
	}
}

func TestRoleSpecial(t *testing.T) {
	if RoleVillager.Special() {
		t.Error("villagers have no night action")
	}
	for _, r := range []Role{RoleWerewolf, RoleDoctor, RoleSeer} {
		if !r.Special() {
			t.Errorf("%s should be special", r)
		}
	}
	if !RoleWerewolf.IsWerewolf() || RoleSeer.IsWerewolf() {
		t.Error("faction check broken")
	}
}

func TestParticipantView(t *testing.T) {
	p := &Participant{ID: 3, Name: "Budi", Kind: KindHuman, ConnID: "c1", Role: RoleSeer, Alive: true}

	v := p.View()
	if v.ID != 3 || v.Name != "Budi" || !v.Connected || !v.Alive {
		t.Fatalf("unexpected view %+v", v)
	}

	// the role must never leak through the public snapshot
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if _, leaked := out["role"]; leaked {
		t.Fatal("role leaked into participant view JSON")
	}
}

func TestNewMessageEnvelope(t *testing.T) {
	msg := NewMessage(MessageTypeSystem, SystemPayload{Text: "halo"})

	if msg.ID == "" || msg.Type != MessageTypeSystem || msg.CreatedAt.IsZero() {
		t.Fatalf("incomplete envelope %+v", msg)
	}

	var p SystemPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		t.Fatal(err)
	}
	if p.Text != "halo" {
		t.Fatalf("payload roundtrip failed: %q", p.Text)
	}

	empty := NewMessage(MessageTypeGameStarted, nil)
	if empty.Payload != nil {
		t.Fatal("nil payload should stay empty")
	}
}
