package leaderboard

import (
	"sort"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/samber/lo"
)

// Entry is one participant's standing.
type Entry struct {
	Participant pick.Participant
	DisplayName string
	Points      int
	Wins        int
	Losses      int
	Pushes      int
	LockWins    int
	LockLosses  int
	Pending     int
	PicksMade   int
	Rank        int
}

// Build aggregates picks per participant and ranks them: points desc, wins
// desc, lock wins desc, then display name. Tied entries share a rank and the
// next rank skips accordingly (1, 1, 3).
func Build(picks []pick.Pick, names map[pick.Participant]string) []Entry {
	grouped := lo.GroupBy(picks, func(p pick.Pick) pick.Participant { return p.Participant })

	entries := make([]Entry, 0, len(grouped))
	for participant, rows := range grouped {
		e := Entry{
			Participant: participant,
			DisplayName: displayName(participant, names),
			PicksMade:   len(rows),
		}
		for _, p := range rows {
			e.Points += p.Points
			switch p.Result {
			case pick.ResultWin:
				e.Wins++
				if p.IsLock {
					e.LockWins++
				}
			case pick.ResultLoss:
				e.Losses++
				if p.IsLock {
					e.LockLosses++
				}
			case pick.ResultPush:
				e.Pushes++
			default:
				e.Pending++
			}
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.LockWins != b.LockWins {
			return a.LockWins > b.LockWins
		}
		if !strings.EqualFold(a.DisplayName, b.DisplayName) {
			return strings.ToLower(a.DisplayName) < strings.ToLower(b.DisplayName)
		}
		return a.Participant.String() < b.Participant.String()
	})

	for i := range entries {
		if i > 0 && tied(entries[i-1], entries[i]) {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
	return entries
}

func tied(a, b Entry) bool {
	return a.Points == b.Points && a.Wins == b.Wins && a.LockWins == b.LockWins
}

func displayName(p pick.Participant, names map[pick.Participant]string) string {
	if name := strings.TrimSpace(names[p]); name != "" {
		return name
	}
	if p.Kind == pick.KindAnonymous {
		return MaskEmail(p.Key)
	}
	return p.Key
}

// MaskEmail hides most of the local part: "jordan@example.com" becomes
// "jo****@example.com". At least one character is always hidden.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "anonymous"
	}
	runes := []rune(local)
	if len(runes) == 0 {
		return "*@" + domain
	}
	visible := min(2, len(runes)-1)
	return string(runes[:visible]) + strings.Repeat("*", len(runes)-visible) + "@" + domain
}
