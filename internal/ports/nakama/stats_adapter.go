package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tictactoe/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	statsCollection = "leaderboard"
	statsKey        = "stats"

	statsListPageSize = 100
)

// statsStorage is the slice of runtime.NakamaModule the adapter needs.
// Narrowed so tests can mock storage without the full module surface.
type statsStorage interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
	StorageList(ctx context.Context, callerID, userID, collection string, limit int, cursor string) ([]*api.StorageObject, string, error)
}

// NakamaStatsAdapter implements ports.StatsStore on Nakama storage.
// One object per user under a fixed collection/key; the storage version token
// makes the read-modify-write conditional so concurrent updates for the same
// user cannot be lost.
type NakamaStatsAdapter struct {
	storage statsStorage
}

// NewNakamaStatsAdapter creates a new stats adapter.
func NewNakamaStatsAdapter(storage statsStorage) *NakamaStatsAdapter {
	return &NakamaStatsAdapter{storage: storage}
}

// RecordResult applies a win or loss to the user's persisted record.
// A version conflict is retried exactly once from a fresh read; persistent
// failure is returned for the caller to log and drop, never to block a match.
func (a *NakamaStatsAdapter) RecordResult(ctx context.Context, userID string, outcome ports.Outcome) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}

	err := a.recordOnce(ctx, userID, outcome)
	if errors.Is(err, runtime.ErrStorageRejectedVersion) {
		err = a.recordOnce(ctx, userID, outcome)
	}
	if err != nil {
		return fmt.Errorf("failed to record %s for user %s: %w", outcome, userID, err)
	}
	return nil
}

func (a *NakamaStatsAdapter) recordOnce(ctx context.Context, userID string, outcome ports.Outcome) error {
	stats, version, err := a.read(ctx, userID)
	if err != nil {
		// A failed read means "no record yet"; the write below still guards
		// against clobbering a record that does exist.
		stats, version = ports.UserStats{}, "*"
	}

	switch outcome {
	case ports.OutcomeWin:
		stats.Wins++
		stats.Streak++
	case ports.OutcomeLoss:
		stats.Losses++
		stats.Streak = 0
	default:
		return fmt.Errorf("unknown outcome %q", outcome)
	}

	value, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	_, err = a.storage.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      statsCollection,
			Key:             statsKey,
			UserID:          userID,
			Value:           string(value),
			Version:         version,
			PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	return err
}

// read returns the user's stats and the object version token.
// Version "*" (create-only) is returned when no record exists.
func (a *NakamaStatsAdapter) read(ctx context.Context, userID string) (ports.UserStats, string, error) {
	objects, err := a.storage.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: statsCollection, Key: statsKey, UserID: userID},
	})
	if err != nil {
		return ports.UserStats{}, "*", err
	}
	if len(objects) == 0 {
		return ports.UserStats{}, "*", nil
	}

	var stats ports.UserStats
	if err := json.Unmarshal([]byte(objects[0].Value), &stats); err != nil {
		return ports.UserStats{}, "*", err
	}
	return stats, objects[0].Version, nil
}

// ListAll pages through every user's stats object. Malformed values are
// skipped rather than failing the whole listing.
func (a *NakamaStatsAdapter) ListAll(ctx context.Context) (map[string]ports.UserStats, error) {
	records := make(map[string]ports.UserStats)
	cursor := ""

	for {
		objects, next, err := a.storage.StorageList(ctx, "", "", statsCollection, statsListPageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to list stats records: %w", err)
		}

		for _, obj := range objects {
			if obj.Key != statsKey {
				continue
			}
			var stats ports.UserStats
			if err := json.Unmarshal([]byte(obj.Value), &stats); err != nil {
				continue
			}
			records[obj.UserId] = stats
		}

		if next == "" {
			break
		}
		cursor = next
	}

	return records, nil
}

var _ ports.StatsStore = (*NakamaStatsAdapter)(nil)
