package memory

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
)

const (
	SeedSeason      = 2025
	SeedAdminUserID = "00000000-0000-4000-8000-000000000001"
)

// SeedGames returns one week of matchups kicking off a week after now, so a
// fresh memory store accepts picks.
func SeedGames(now time.Time) []game.Game {
	kickoff := now.UTC().Truncate(time.Hour).Add(7 * 24 * time.Hour)
	mk := func(id, home, away string, spread float64, offset time.Duration) game.Game {
		return game.Game{
			ID:        id,
			Season:    SeedSeason,
			Week:      1,
			HomeTeam:  home,
			AwayTeam:  away,
			Spread:    spread,
			Status:    game.StatusScheduled,
			LockAt:    kickoff.Add(offset),
			CreatedAt: now.UTC(),
			UpdatedAt: now.UTC(),
		}
	}
	return []game.Game{
		mk("w1-bama-fsu", "Alabama", "Florida State", -13.5, 0),
		mk("w1-uga-clem", "Georgia", "Clemson", -10.5, time.Hour),
		mk("w1-tex-mich", "Texas", "Michigan", -3, 2*time.Hour),
		mk("w1-nd-tamu", "Notre Dame", "Texas A&M", 2.5, 3*time.Hour),
		mk("w1-lsu-usc", "LSU", "USC", -4.5, 4*time.Hour),
		mk("w1-osu-psu", "Ohio State", "Penn State", -6, 5*time.Hour),
		mk("w1-ore-wash", "Oregon", "Washington", -7, 6*time.Hour),
		mk("w1-miami-fla", "Miami", "Florida", -1, 7*time.Hour),
	}
}

func SeedUsers(now time.Time) []user.User {
	return []user.User{
		{
			ID:          SeedAdminUserID,
			Email:       "commissioner@example.com",
			DisplayName: "Commissioner",
			IsAdmin:     true,
			CreatedAt:   now.UTC(),
			UpdatedAt:   now.UTC(),
		},
	}
}
