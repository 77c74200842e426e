package game

import (
	"time"

	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
)

// scheduleLocked arms the room's single timer. The callback captures the
// current generation and checks it again under the lock before running,
// so a callback that fires after a cancel or a faster transition does
// nothing. Caller must hold r.mu.
func (r *Room) scheduleLocked(d time.Duration, fn func()) {
	r.cancelTimerLocked()
	gen := r.timerGen
	r.timer = time.AfterFunc(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		defer r.recoverPhaseFault()
		if r.closed || gen != r.timerGen {
			return
		}
		fn()
	})
}

// cancelTimerLocked invalidates any pending callback. Bumping the
// generation is what actually disarms it; Stop is best effort.
func (r *Room) cancelTimerLocked() {
	r.timerGen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// recoverPhaseFault keeps a panicking timer callback from killing the
// process. The room survives in whatever phase it was in.
func (r *Room) recoverPhaseFault() {
	if rec := recover(); rec != nil {
		r.log.Error().Interface("panic", rec).Msg("phase callback panicked")
		r.systemf("Terjadi gangguan internal. Permainan mungkin tidak dapat dilanjutkan.")
	}
}

func (r *Room) startNightLocked() {
	r.phase = domain.PhaseNight
	r.phaseResolved = false
	r.killTargetID = -1
	r.protectTargetID = -1
	for _, p := range r.participants {
		p.ActedThisPhase = false
	}

	r.notifier.Broadcast(domain.NewMessage(domain.MessageTypePhaseChange, domain.PhaseChangePayload{
		Phase: r.phase,
		Label: r.phase.Label(),
		Day:   r.dayCount,
	}))
	r.systemf("Ini adalah malam hari. Werewolf berburu, Dokter melindungi, dan Seer melihat.")
	r.log.Info().Int("day", r.dayCount).Msg("night phase started")

	for _, p := range r.participants {
		if !p.Alive || !p.ActiveHuman() || !p.Role.Special() {
			continue
		}
		var kind domain.ActionType
		switch p.Role {
		case domain.RoleWerewolf:
			kind = domain.ActionWerewolfKill
		case domain.RoleDoctor:
			kind = domain.ActionDoctorProtect
		case domain.RoleSeer:
			kind = domain.ActionSeerReveal
		}
		var targets []domain.TargetRef
		for _, t := range r.participants {
			if !t.Alive {
				continue
			}
			if kind == domain.ActionWerewolfKill && t.Role.IsWerewolf() {
				continue
			}
			targets = append(targets, domain.TargetRef{ID: t.ID, Name: t.Name})
		}
		r.notifier.NotifyConn(p.ConnID, domain.NewMessage(domain.MessageTypeActionRequest,
			domain.ActionRequestPayload{Kind: kind, Targets: targets}))
	}

	r.scheduleLocked(r.cfg.NightActionWindow, r.resolveNightLocked)
	r.maybeAdvanceNightLocked()
}

// maybeAdvanceNightLocked resolves early once every alive connected human
// with a night role has acted. Disconnected and computer specials do not
// hold the phase open; the resolver acts for them.
func (r *Room) maybeAdvanceNightLocked() {
	if r.phase != domain.PhaseNight || r.phaseResolved {
		return
	}
	for _, p := range r.participants {
		if p.Alive && p.ActiveHuman() && p.Role.Special() && !p.ActedThisPhase {
			return
		}
	}
	r.scheduleLocked(r.cfg.ResolveDelay, r.resolveNightLocked)
}

// runComputerNightLocked fills in night actions for computer players.
// Human specials keep their agency even while disconnected, an absent
// wolf simply hunts nobody. A wolf or doctor whose shared target is
// already set keeps the human's choice.
func (r *Room) runComputerNightLocked() {
	for _, p := range r.participants {
		if !p.Alive || p.ActedThisPhase || !p.Role.Special() {
			continue
		}
		if p.Kind != domain.KindComputer {
			continue
		}
		p.ActedThisPhase = true

		switch p.Role {
		case domain.RoleWerewolf:
			if r.killTargetID >= 0 {
				continue
			}
			if t := computerKillTarget(r.rng, r.participants); t != nil {
				r.killTargetID = t.ID
				r.systemf("%s memilih untuk membunuh %s.", p.Name, t.Name)
			}
		case domain.RoleDoctor:
			if r.protectTargetID >= 0 {
				continue
			}
			if t := computerAnyAlive(r.rng, r.participants); t != nil {
				r.protectTargetID = t.ID
			}
		case domain.RoleSeer:
			if t := computerAnyAlive(r.rng, r.participants); t != nil {
				r.systemf("%s melihat peran %s.", p.Name, t.Name)
			}
		}
	}
}

func (r *Room) resolveNightLocked() {
	if r.phase != domain.PhaseNight || r.phaseResolved {
		return
	}
	r.phaseResolved = true
	r.runComputerNightLocked()

	if r.killTargetID >= 0 {
		victim := r.byID(r.killTargetID)
		switch {
		case victim == nil || !victim.Alive:
			r.systemf("Tidak ada yang dimangsa malam ini.")
		case victim.ID == r.protectTargetID:
			r.systemf("Malam ini %s diserang Werewolf tapi diselamatkan oleh Dokter.", victim.Name)
		default:
			victim.Alive = false
			r.systemf("Malam ini, %s dimangsa oleh Werewolf. Perannya adalah %s.", victim.Name, victim.Role)
		}
	} else {
		r.systemf("Tidak ada yang dimangsa malam ini.")
	}

	r.killTargetID = -1
	r.protectTargetID = -1
	r.broadcastRosterLocked()

	if out := EvaluateWin(r.participants); out.Terminal() {
		r.finishLocked(out)
		return
	}
	r.scheduleLocked(r.cfg.PhaseDelay, r.startDayLocked)
}

func (r *Room) startDayLocked() {
	r.phase = domain.PhaseDay
	r.phaseResolved = false
	r.dayCount++
	r.votes = make(map[int]int)
	for _, p := range r.participants {
		p.ActedThisPhase = false
	}

	r.notifier.Broadcast(domain.NewMessage(domain.MessageTypePhaseChange, domain.PhaseChangePayload{
		Phase: r.phase,
		Label: r.phase.Label(),
		Day:   r.dayCount,
	}))
	r.systemf("Hari ke-%d. Diskusikan siapa yang mencurigakan, lalu pilih siapa yang akan digantung.", r.dayCount)
	r.log.Info().Int("day", r.dayCount).Msg("day phase started")

	for _, p := range r.participants {
		if !p.Alive || !p.ActiveHuman() {
			continue
		}
		var targets []domain.TargetRef
		for _, t := range r.participants {
			if t.Alive && t.ID != p.ID {
				targets = append(targets, domain.TargetRef{ID: t.ID, Name: t.Name})
			}
		}
		r.notifier.NotifyConn(p.ConnID, domain.NewMessage(domain.MessageTypeActionRequest,
			domain.ActionRequestPayload{Kind: domain.ActionVote, Targets: targets}))
	}

	r.scheduleLocked(r.cfg.DayVoteWindow, r.resolveDayLocked)
	r.maybeAdvanceDayLocked()
}

// maybeAdvanceDayLocked resolves the vote early once every alive human
// has voted. Disconnected humans still count here, so a room with a
// dropped voter waits out the full window.
func (r *Room) maybeAdvanceDayLocked() {
	if r.phase != domain.PhaseDay || r.phaseResolved {
		return
	}
	for _, p := range r.participants {
		if p.Alive && p.Kind == domain.KindHuman && !p.ActedThisPhase {
			return
		}
	}
	r.scheduleLocked(r.cfg.ResolveDelay, r.resolveDayLocked)
}

func (r *Room) runComputerDayLocked() {
	for _, p := range r.participants {
		if !p.Alive || p.ActedThisPhase || p.ActiveHuman() {
			continue
		}
		if p.Kind == domain.KindHuman {
			// Disconnected humans abstain
			p.ActedThisPhase = true
			continue
		}
		p.ActedThisPhase = true
		if t := computerVoteTarget(r.rng, p, r.participants); t != nil {
			r.votes[t.ID]++
			r.systemf("%s memilih untuk menggantung %s.", p.Name, t.Name)
		}
	}
}

func (r *Room) resolveDayLocked() {
	if r.phase != domain.PhaseDay || r.phaseResolved {
		return
	}
	r.phaseResolved = true
	r.runComputerDayLocked()

	hangedID := -1
	best := 0
	tied := false
	for id, n := range r.votes {
		switch {
		case n > best:
			best = n
			hangedID = id
			tied = false
		case n == best:
			tied = true
		}
	}

	if hangedID >= 0 && !tied {
		if victim := r.byID(hangedID); victim != nil && victim.Alive {
			victim.Alive = false
			r.systemf("Warga telah memilih. %s digantung. Perannya adalah %s.", victim.Name, victim.Role)
		}
	} else {
		r.systemf("Tidak ada yang digantung hari ini karena seri suara atau tidak ada yang memilih.")
	}

	r.votes = make(map[int]int)
	r.broadcastRosterLocked()

	if out := EvaluateWin(r.participants); out.Terminal() {
		r.finishLocked(out)
		return
	}
	r.scheduleLocked(r.cfg.PhaseDelay, r.startNightLocked)
}

// finishLocked enters GameOver. The room stays open so players can read
// the result; it closes on restart or when the host leaves.
func (r *Room) finishLocked(out Outcome) {
	r.cancelTimerLocked()
	r.phase = domain.PhaseGameOver

	r.notifier.Broadcast(domain.NewMessage(domain.MessageTypePhaseChange, domain.PhaseChangePayload{
		Phase: r.phase,
		Label: r.phase.Label(),
		Day:   r.dayCount,
	}))
	r.notifier.Broadcast(domain.NewMessage(domain.MessageTypeGameOver, domain.GameOverPayload{Outcome: out.Text()}))
	r.systemf("%s", out.Text())
	r.log.Info().Str("outcome", out.Text()).Int("day", r.dayCount).Msg("game over")
}
