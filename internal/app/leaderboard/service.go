package leaderboard

import (
	"context"
	"fmt"
	"sort"

	"tictactoe/internal/ports"
)

// Entry is one ranked leaderboard row. Rank is 1-based and assigned at query
// time only; it is never persisted.
type Entry struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Streak   int    `json:"streak"`
	Rank     int    `json:"rank"`
}

// Response is the leaderboard query result, ordered by rank ascending.
type Response struct {
	Entries []Entry `json:"entries"`
}

// Service answers ranked leaderboard queries over the persisted stats records.
type Service struct {
	stats    ports.StatsStore
	accounts ports.AccountDirectory
}

// NewService constructs a leaderboard service with required ports.
func NewService(stats ports.StatsStore, accounts ports.AccountDirectory) *Service {
	return &Service{stats: stats, accounts: accounts}
}

// Query reads every stats record, resolves display names and returns the
// ranked list: wins descending, streak descending, then user ID ascending so
// output is fully deterministic. It never mutates any record.
func (s *Service) Query(ctx context.Context) (Response, error) {
	if s.stats == nil {
		return Response{}, fmt.Errorf("leaderboard service not configured")
	}

	records, err := s.stats.ListAll(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("failed to list stats records: %w", err)
	}

	userIDs := make([]string, 0, len(records))
	for userID := range records {
		userIDs = append(userIDs, userID)
	}

	names := s.resolveNames(ctx, userIDs)

	entries := make([]Entry, 0, len(records))
	for userID, stats := range records {
		name := names[userID]
		if name == "" {
			// Profile lookups are best-effort; the raw ID is still usable.
			name = userID
		}
		entries = append(entries, Entry{
			UserID:   userID,
			Username: name,
			Wins:     stats.Wins,
			Losses:   stats.Losses,
			Streak:   stats.Streak,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		if entries[i].Streak != entries[j].Streak {
			return entries[i].Streak > entries[j].Streak
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return Response{Entries: entries}, nil
}

func (s *Service) resolveNames(ctx context.Context, userIDs []string) map[string]string {
	if s.accounts == nil || len(userIDs) == 0 {
		return nil
	}
	names, err := s.accounts.DisplayNames(ctx, userIDs)
	if err != nil {
		return nil
	}
	return names
}
