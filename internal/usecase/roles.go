package usecase

import (
	"math/rand/v2"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
)

// AssignRoles deals a round. Players are shuffled uniformly, then cut into
// contiguous villager, spy and white hat slices in that order. Anyone past
// the quota total comes back with domain.RoleNone.
//
// The caller must make sure len(players) >= settings.Quota(); short input
// simply leaves the later slices under-filled. players is not modified.
func AssignRoles(rng *rand.Rand, players []string, settings domain.Settings) []domain.Assignment {
	shuffled := make([]string, len(players))
	copy(shuffled, players)

	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	slices := []struct {
		role  domain.Role
		count int
	}{
		{domain.RoleVillager, settings.VillagerCount},
		{domain.RoleSpy, settings.SpyCount},
		{domain.RoleWhiteHat, settings.WhiteHatCount},
	}

	out := make([]domain.Assignment, 0, len(shuffled))
	i := 0
	for _, s := range slices {
		for n := 0; n < s.count && i < len(shuffled); n++ {
			out = append(out, domain.Assignment{
				ParticipantID: shuffled[i],
				Role:          s.role,
				Keyword:       settings.Keywords.For(s.role),
			})
			i++
		}
	}
	for ; i < len(shuffled); i++ {
		out = append(out, domain.Assignment{ParticipantID: shuffled[i], Role: domain.RoleNone})
	}
	return out
}
