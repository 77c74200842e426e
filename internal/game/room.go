package game

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
)

// Config holds the engine's timing knobs. Tests inject millisecond-scale
// windows; the server builds this from its env config.
type Config struct {
	NightActionWindow time.Duration
	DayVoteWindow     time.Duration
	PhaseDelay        time.Duration
	ResolveDelay      time.Duration
}

// DefaultConfig returns the standard phase timings
func DefaultConfig() Config {
	return Config{
		NightActionWindow: domain.NightActionWindow,
		DayVoteWindow:     domain.DayVoteWindow,
		PhaseDelay:        domain.PhaseDelay,
		ResolveDelay:      domain.ResolveDelay,
	}
}

// Room is the authoritative state of one game session. Every mutation goes
// through the single mutex: action submissions, timer callbacks and
// connection events all serialize here, so no two handlers ever interleave
// on the same room. Rooms are independent of each other.
type Room struct {
	mu sync.Mutex

	code     string
	notifier Notifier
	cfg      Config
	rng      *rand.Rand
	log      zerolog.Logger

	// hostConnID is the controlling connection: the first transport
	// session that attaches to the room
	hostConnID string

	phase    domain.Phase
	dayCount int

	// phaseResolved is set once the current Night or Day has resolved and
	// the room is sitting out the announcement delay before the next
	// phase. Submissions landing in that gap are rejected instead of
	// re-triggering resolution.
	phaseResolved bool

	participants []*domain.Participant
	nextID       int

	// Shared night targets: one kill and one protect per room, the last
	// accepted submission among same-role actors wins
	votes           map[int]int
	killTargetID    int
	protectTargetID int

	// timerGen guards scheduled callbacks: every transition and teardown
	// bumps it, and a callback whose captured generation no longer
	// matches is a no-op. This is what makes a raced timer harmless.
	timerGen uint64
	timer    *time.Timer
	closed   bool
}

// NewRoom creates a room in the Setup phase. rng may be nil, in which case
// a time-seeded source is used; tests pass a seeded one.
func NewRoom(code string, notifier Notifier, cfg Config, rng *rand.Rand) *Room {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Room{
		code:            code,
		notifier:        notifier,
		cfg:             cfg,
		rng:             rng,
		log:             log.With().Str("room", code).Logger(),
		phase:           domain.PhaseSetup,
		votes:           make(map[int]int),
		killTargetID:    -1,
		protectTargetID: -1,
	}
}

// Code returns the room's shareable code
func (r *Room) Code() string {
	return r.code
}

// Phase returns the current phase
func (r *Room) Phase() domain.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Closed reports whether the room has been torn down
func (r *Room) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// ConnOpened attaches a transport session to the room. The first session
// to attach becomes the host.
func (r *Room) ConnOpened(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if r.hostConnID == "" {
		r.hostConnID = connID
		r.log.Info().Str("conn", connID).Msg("host connection attached")
	}
}

// Register makes the connection a participant. Re-registering from the
// same connection updates the existing seat instead of creating a new one.
func (r *Room) Register(connID, name string, kind domain.Kind) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, domain.ErrRoomClosed
	}
	if r.phase != domain.PhaseSetup {
		return 0, domain.ErrInvalidPhase
	}
	if !kind.Valid() {
		kind = domain.KindHuman
	}

	for _, p := range r.participants {
		if p.ConnID == connID {
			if name != "" {
				p.Name = name
			}
			p.Kind = kind
			r.broadcastRosterLocked()
			return p.ID, nil
		}
	}

	p := r.addSeatLocked(name, kind, connID)
	r.systemf("%s (%s) telah bergabung.", p.Name, p.Kind)
	r.broadcastRosterLocked()
	return p.ID, nil
}

// AddSeat creates an unconnected participant: a computer player or a
// placeholder for a human joining from the same table. Host only.
func (r *Room) AddSeat(requesterConn, name string, kind domain.Kind) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, domain.ErrRoomClosed
	}
	if requesterConn != r.hostConnID {
		return 0, domain.ErrNotHost
	}
	if r.phase != domain.PhaseSetup {
		return 0, domain.ErrInvalidPhase
	}
	if !kind.Valid() {
		kind = domain.KindComputer
	}

	p := r.addSeatLocked(name, kind, "")
	r.systemf("%s (%s - ditambahkan) telah ditambahkan ke ruangan.", p.Name, p.Kind)
	r.broadcastRosterLocked()
	return p.ID, nil
}

func (r *Room) addSeatLocked(name string, kind domain.Kind, connID string) *domain.Participant {
	id := r.nextID
	r.nextID++
	if name == "" {
		name = fmt.Sprintf("Pemain %d", id+1)
	}
	p := &domain.Participant{
		ID:     id,
		Name:   name,
		Kind:   kind,
		ConnID: connID,
		Alive:  true,
	}
	r.participants = append(r.participants, p)
	return p
}

// Start runs role assignment and enters the first Night. Host only,
// requires at least MinPlayers seats and one connected human.
func (r *Room) Start(requesterConn string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return domain.ErrRoomClosed
	}
	if requesterConn != r.hostConnID {
		return domain.ErrNotHost
	}
	if r.phase != domain.PhaseSetup {
		return domain.ErrInvalidPhase
	}
	if len(r.participants) < domain.MinPlayers {
		return domain.ErrInsufficientPlayers
	}

	humans := 0
	for _, p := range r.participants {
		if p.ActiveHuman() {
			humans++
		}
	}
	if humans < domain.MinHumans {
		return domain.ErrNoConnectedHuman
	}

	if err := AssignRoles(r.rng, r.participants); err != nil {
		return err
	}
	for _, p := range r.participants {
		p.Alive = true
		p.ActedThisPhase = false
		r.log.Debug().Str("player", p.Name).Str("role", string(p.Role)).Msg("role assigned")
	}

	for _, p := range r.participants {
		if !p.Connected() {
			continue
		}
		r.notifier.NotifyConn(p.ConnID, domain.NewMessage(domain.MessageTypeYourRole, domain.RolePayload{Role: p.Role}))
		if p.Role.IsWerewolf() {
			var buddies []string
			for _, o := range r.participants {
				if o.ID != p.ID && o.Role.IsWerewolf() {
					buddies = append(buddies, o.Name)
				}
			}
			if len(buddies) > 0 {
				r.notifier.NotifyConn(p.ConnID, domain.NewMessage(domain.MessageTypeWerewolfBuddies, domain.BuddiesPayload{Names: buddies}))
			}
		}
	}

	r.notifier.Broadcast(domain.NewMessage(domain.MessageTypeGameStarted, nil))
	r.systemf("Game dimulai! Selamat datang di desa Werewolf.")
	r.broadcastRosterLocked()
	r.log.Info().Int("players", len(r.participants)).Msg("game started")

	// Pathological small tiers can already satisfy the wolves' parity win
	if out := EvaluateWin(r.participants); out.Terminal() {
		r.finishLocked(out)
		return nil
	}

	r.startNightLocked()
	return nil
}

// SubmitAction validates and applies a vote or night action attributed to
// a participant. The submitting connection must own the seat.
func (r *Room) SubmitAction(connID string, act domain.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return domain.ErrRoomClosed
	}

	actor := r.byID(act.ActorID)
	if actor == nil {
		return domain.ErrUnknownParticipant
	}
	if actor.ConnID == "" || actor.ConnID != connID {
		return domain.ErrActorNotEligible
	}

	switch act.Type {
	case domain.ActionVote:
		return r.submitVoteLocked(actor, act.TargetID)
	case domain.ActionWerewolfKill, domain.ActionDoctorProtect, domain.ActionSeerReveal:
		return r.submitNightActionLocked(actor, act)
	}
	return fmt.Errorf("unknown action type %q", act.Type)
}

func (r *Room) submitVoteLocked(voter *domain.Participant, targetID int) error {
	if r.phase != domain.PhaseDay || r.phaseResolved {
		return domain.ErrInvalidPhase
	}
	if !voter.Alive || voter.ActedThisPhase {
		return domain.ErrActorNotEligible
	}
	target := r.byID(targetID)
	if target == nil || !target.Alive || target.ID == voter.ID {
		return domain.ErrTargetNotEligible
	}

	r.votes[target.ID]++
	voter.ActedThisPhase = true
	r.systemf("%s memilih untuk menggantung %s.", voter.Name, target.Name)
	r.notifier.NotifyConn(voter.ConnID, domain.NewMessage(domain.MessageTypeActionOK, nil))

	r.maybeAdvanceDayLocked()
	return nil
}

func (r *Room) submitNightActionLocked(actor *domain.Participant, act domain.Action) error {
	if r.phase != domain.PhaseNight || r.phaseResolved {
		return domain.ErrInvalidPhase
	}
	role, _ := act.Type.NightRole()
	if !actor.Alive || actor.Role != role || actor.ActedThisPhase {
		return domain.ErrActorNotEligible
	}
	target := r.byID(act.TargetID)
	if target == nil || !target.Alive {
		return domain.ErrTargetNotEligible
	}
	if act.Type == domain.ActionWerewolfKill && target.Role.IsWerewolf() {
		return domain.ErrTargetNotEligible
	}

	actor.ActedThisPhase = true
	switch act.Type {
	case domain.ActionWerewolfKill:
		r.killTargetID = target.ID
		r.systemf("%s memilih untuk membunuh %s.", actor.Name, target.Name)
	case domain.ActionDoctorProtect:
		r.protectTargetID = target.ID
		r.systemf("%s memilih untuk melindungi %s.", actor.Name, target.Name)
	case domain.ActionSeerReveal:
		// The reveal itself goes to the seer alone; the room only learns
		// that someone was looked at.
		r.notifier.NotifyConn(actor.ConnID, domain.NewMessage(domain.MessageTypeSystem,
			domain.SystemPayload{Text: fmt.Sprintf("Peran %s adalah %s.", target.Name, target.Role)}))
		r.systemf("%s melihat peran %s.", actor.Name, target.Name)
	}
	r.notifier.NotifyConn(actor.ConnID, domain.NewMessage(domain.MessageTypeActionOK, nil))

	r.maybeAdvanceNightLocked()
	return nil
}

// Chat relays a chat line. During the night an alive werewolf's message is
// delivered only to alive, connected werewolves; everything else goes to
// the whole room.
func (r *Room) Chat(connID string, senderID int, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return domain.ErrRoomClosed
	}
	sender := r.byID(senderID)
	if sender == nil || sender.ConnID == "" || sender.ConnID != connID {
		return domain.ErrUnknownParticipant
	}

	msg := domain.NewMessage(domain.MessageTypeChat, domain.ChatLinePayload{Text: text})
	msg.FromID = strconv.Itoa(sender.ID)
	msg.FromName = sender.Name

	if r.phase == domain.PhaseNight && sender.Alive && sender.Role.IsWerewolf() {
		for _, p := range r.participants {
			if p.Alive && p.Connected() && p.Role.IsWerewolf() {
				r.notifier.NotifyConn(p.ConnID, msg)
			}
		}
		return nil
	}

	r.notifier.Broadcast(msg)
	return nil
}

// ConnClosed handles a dropped transport session. Participants stay on the
// roster and keep counting for the win evaluator; only their connection
// goes away. A dropped host tears the room down unless the game is over.
func (r *Room) ConnClosed(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	if connID == r.hostConnID && r.phase != domain.PhaseGameOver {
		r.systemf("Host telah terputus. Ruangan ditutup.")
		r.closeLocked("host terputus")
		return
	}

	var p *domain.Participant
	for _, q := range r.participants {
		if q.ConnID == connID {
			p = q
			break
		}
	}
	if p == nil {
		return
	}

	p.ConnID = ""
	r.systemf("%s telah meninggalkan permainan.", p.Name)
	r.broadcastRosterLocked()

	if r.phase == domain.PhaseSetup {
		anyConnected := false
		for _, q := range r.participants {
			if q.Connected() {
				anyConnected = true
				break
			}
		}
		if !anyConnected {
			r.closeLocked("semua pemain keluar")
		}
		return
	}

	if r.phase == domain.PhaseNight || r.phase == domain.PhaseDay {
		humansLeft := false
		for _, q := range r.participants {
			if q.Alive && q.ActiveHuman() {
				humansLeft = true
				break
			}
		}
		if !humansLeft {
			r.systemf("Semua pemain manusia telah terputus. Permainan dilanjutkan dengan pemain Komputer.")
		}

		if out := EvaluateWin(r.participants); out.Terminal() {
			r.finishLocked(out)
			return
		}

		// The drop may have been the last pending night actor
		if r.phase == domain.PhaseNight {
			r.maybeAdvanceNightLocked()
		}
	}
}

// Restart tears the room down so the host can open a fresh one. Host only.
func (r *Room) Restart(requesterConn string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return domain.ErrRoomClosed
	}
	if requesterConn != r.hostConnID {
		return domain.ErrNotHost
	}
	r.systemf("Host memulai ulang permainan. Ruangan ditutup.")
	r.closeLocked("host memulai ulang ruangan")
	return nil
}

func (r *Room) closeLocked(reason string) {
	if r.closed {
		return
	}
	r.closed = true
	r.cancelTimerLocked()
	r.notifier.Broadcast(domain.NewMessage(domain.MessageTypeRoomClosed, domain.RoomClosedPayload{Reason: reason}))
	r.notifier.RoomClosed(reason)
	r.log.Info().Str("reason", reason).Msg("room closed")
}

func (r *Room) byID(id int) *domain.Participant {
	for _, p := range r.participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) systemf(format string, args ...any) {
	r.notifier.Broadcast(domain.NewMessage(domain.MessageTypeSystem,
		domain.SystemPayload{Text: fmt.Sprintf(format, args...)}))
}

func (r *Room) broadcastRosterLocked() {
	views := make([]domain.ParticipantView, 0, len(r.participants))
	for _, p := range r.participants {
		views = append(views, p.View())
	}
	r.notifier.Broadcast(domain.NewMessage(domain.MessageTypeParticipantList,
		domain.ParticipantListPayload{Participants: views}))
}
