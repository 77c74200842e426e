package game

import (
	"math/rand"

	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
)

// Computer seats play a simple probabilistic policy: wolves hunt the
// village, the village hunts wolves, everything else is uniform chance.

func pickRandom(rng *rand.Rand, candidates []*domain.Participant) *domain.Participant {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[rng.Intn(len(candidates))]
}

// computerVoteTarget picks a day-vote target for a computer participant.
// A werewolf prefers a random non-werewolf, everyone else prefers a random
// werewolf; both fall back to any other alive participant.
func computerVoteTarget(rng *rand.Rand, voter *domain.Participant, participants []*domain.Participant) *domain.Participant {
	var eligible, preferred []*domain.Participant
	for _, p := range participants {
		if !p.Alive || p.ID == voter.ID {
			continue
		}
		eligible = append(eligible, p)
		if voter.Role.IsWerewolf() != p.Role.IsWerewolf() {
			preferred = append(preferred, p)
		}
	}
	if t := pickRandom(rng, preferred); t != nil {
		return t
	}
	return pickRandom(rng, eligible)
}

// computerKillTarget picks the pack's prey: any alive non-werewolf
func computerKillTarget(rng *rand.Rand, participants []*domain.Participant) *domain.Participant {
	var eligible []*domain.Participant
	for _, p := range participants {
		if p.Alive && !p.Role.IsWerewolf() {
			eligible = append(eligible, p)
		}
	}
	return pickRandom(rng, eligible)
}

// computerAnyAlive picks any alive participant, used by the computer
// doctor (self-protection allowed) and the computer seer
func computerAnyAlive(rng *rand.Rand, participants []*domain.Participant) *domain.Participant {
	var eligible []*domain.Participant
	for _, p := range participants {
		if p.Alive {
			eligible = append(eligible, p)
		}
	}
	return pickRandom(rng, eligible)
}
