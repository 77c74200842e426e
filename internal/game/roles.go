package game

import (
	"math/rand"

	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
)

// RoleSet returns the role multiset for n players, before shuffling.
// The tiers follow the classic village balance: one wolf for small tables,
// a second (and third) as the table grows, then floor(n/4) wolves with a
// minimum of two for big tables. Doctor joins at 4 players, Seer at 5.
func RoleSet(n int) ([]domain.Role, error) {
	if n < domain.MinPlayers {
		return nil, domain.ErrInsufficientPlayers
	}

	roles := make([]domain.Role, 0, n)
	switch {
	case n <= 5:
		roles = append(roles, domain.RoleWerewolf, domain.RoleVillager, domain.RoleVillager)
		if n >= 4 {
			roles = append(roles, domain.RoleDoctor)
		}
		if n == 5 {
			roles = append(roles, domain.RoleSeer)
		}
	case n <= 10:
		roles = append(roles,
			domain.RoleWerewolf, domain.RoleWerewolf,
			domain.RoleVillager, domain.RoleVillager,
			domain.RoleDoctor, domain.RoleSeer,
		)
		if n >= 7 {
			roles = append(roles, domain.RoleVillager)
		}
		if n >= 8 {
			roles = append(roles, domain.RoleVillager)
		}
		if n >= 9 {
			roles = append(roles, domain.RoleWerewolf)
		}
		if n == 10 {
			roles = append(roles, domain.RoleVillager)
		}
	default:
		wolves := n / 4
		if wolves < 2 {
			wolves = 2
		}
		for i := 0; i < wolves; i++ {
			roles = append(roles, domain.RoleWerewolf)
		}
		roles = append(roles, domain.RoleDoctor, domain.RoleSeer)
		for len(roles) < n {
			roles = append(roles, domain.RoleVillager)
		}
	}

	return roles, nil
}

// AssignRoles shuffles the role set for len(participants) players and
// assigns it positionally in registry order. It runs exactly once per game.
func AssignRoles(rng *rand.Rand, participants []*domain.Participant) error {
	roles, err := RoleSet(len(participants))
	if err != nil {
		return err
	}

	rng.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})

	for i, p := range participants {
		p.Role = roles[i]
	}
	return nil
}
