package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
)

func alive(role domain.Role) *domain.Participant {
	return &domain.Participant{Role: role, Alive: true}
}

func dead(role domain.Role) *domain.Participant {
	return &domain.Participant{Role: role, Alive: false}
}

func TestEvaluateWin(t *testing.T) {
	tests := []struct {
		name         string
		participants []*domain.Participant
		want         Outcome
	}{
		{
			name: "game continues",
			participants: []*domain.Participant{
				alive(domain.RoleWerewolf),
				alive(domain.RoleVillager),
				alive(domain.RoleVillager),
				alive(domain.RoleDoctor),
			},
			want: OutcomeNone,
		},
		{
			name: "all werewolves dead",
			participants: []*domain.Participant{
				dead(domain.RoleWerewolf),
				alive(domain.RoleVillager),
				alive(domain.RoleVillager),
			},
			want: OutcomeVillagersWin,
		},
		{
			name: "werewolves reach parity",
			participants: []*domain.Participant{
				alive(domain.RoleWerewolf),
				alive(domain.RoleVillager),
				dead(domain.RoleVillager),
				dead(domain.RoleDoctor),
			},
			want: OutcomeWerewolvesWin,
		},
		{
			name: "werewolves outnumber",
			participants: []*domain.Participant{
				alive(domain.RoleWerewolf),
				alive(domain.RoleWerewolf),
				alive(domain.RoleVillager),
			},
			want: OutcomeWerewolvesWin,
		},
		{
			name: "dead pack wins it even for a tiny village",
			participants: []*domain.Participant{
				dead(domain.RoleWerewolf),
				dead(domain.RoleVillager),
				alive(domain.RoleVillager),
				alive(domain.RoleSeer),
			},
			want: OutcomeVillagersWin,
		},
		{
			name: "parity checked before the player floor",
			participants: []*domain.Participant{
				alive(domain.RoleWerewolf),
				alive(domain.RoleVillager),
				dead(domain.RoleVillager),
			},
			want: OutcomeWerewolvesWin,
		},
		{
			name:         "empty village",
			participants: nil,
			want:         OutcomeVillagersWin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateWin(tt.participants))
		})
	}
}

func TestOutcomeTerminal(t *testing.T) {
	assert.False(t, OutcomeNone.Terminal())
	assert.True(t, OutcomeVillagersWin.Terminal())
	assert.True(t, OutcomeWerewolvesWin.Terminal())
	assert.True(t, OutcomeTooFewPlayers.Terminal())
}

func TestOutcomeText(t *testing.T) {
	assert.Contains(t, OutcomeVillagersWin.Text(), "Penduduk desa")
	assert.Contains(t, OutcomeWerewolvesWin.Text(), "Werewolf")
	assert.Contains(t, OutcomeTooFewPlayers.Text(), "terlalu sedikit")
	assert.Empty(t, OutcomeNone.Text())
}
