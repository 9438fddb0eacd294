package memory

import (
	"sort"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

func sortGames(games []game.Game) {
	sort.Slice(games, func(i, j int) bool {
		if !games[i].LockAt.Equal(games[j].LockAt) {
			return games[i].LockAt.Before(games[j].LockAt)
		}
		return games[i].ID < games[j].ID
	})
}

func sortPicks(picks []pick.Pick) {
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].Week != picks[j].Week {
			return picks[i].Week < picks[j].Week
		}
		if !picks[i].CreatedAt.Equal(picks[j].CreatedAt) {
			return picks[i].CreatedAt.Before(picks[j].CreatedAt)
		}
		return picks[i].ID < picks[j].ID
	})
}
