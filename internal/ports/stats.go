package ports

import "context"

// Outcome is a terminal match result from one participant's perspective.
// Draws are never recorded, so there is no draw outcome.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// UserStats is the cumulative record persisted per user.
type UserStats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Streak int `json:"streak"` // consecutive wins, reset to 0 on any loss
}

// StatsStore persists cumulative win/loss records used by the leaderboard.
type StatsStore interface {
	// RecordResult applies a single match outcome to the user's record,
	// creating it with zero defaults when absent. The update must be atomic
	// per user: concurrent read-modify-write sequences may not lose updates.
	RecordResult(ctx context.Context, userID string, outcome Outcome) error

	// ListAll returns every persisted record keyed by user ID.
	ListAll(ctx context.Context) (map[string]UserStats, error)
}
