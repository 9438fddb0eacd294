package pick

import "context"

// Repository stores user and anonymous picks. Create and Update must apply
// CheckWrite atomically against concurrent writers of the same participant,
// week and season.
type Repository interface {
	GetByID(ctx context.Context, kind ParticipantKind, pickID string) (Pick, bool, error)
	// ListByParticipant returns picks of one participant; week 0 means all weeks.
	ListByParticipant(ctx context.Context, participant Participant, season, week int) ([]Pick, error)
	ListByGame(ctx context.Context, gameID string) ([]Pick, error)
	// ListBySeason returns picks of every participant; week 0 means all weeks.
	ListBySeason(ctx context.Context, season, week int) ([]Pick, error)
	CountByGame(ctx context.Context, gameID string) (int, error)
	Create(ctx context.Context, p Pick, limits Limits) error
	Update(ctx context.Context, p Pick, limits Limits) error
	Delete(ctx context.Context, kind ParticipantKind, pickID string) error
	ApplyResults(ctx context.Context, updates []ResultUpdate) error
	// ResetResultsByWeek sets every pick of the week back to pending with
	// zero points and returns how many rows changed.
	ResetResultsByWeek(ctx context.Context, season, week int) (int, error)
}
