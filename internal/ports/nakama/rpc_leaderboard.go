package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"tictactoe/internal/app/leaderboard"

	"github.com/heroiclabs/nakama-common/runtime"
)

// rpcLeaderboard answers the ranked leaderboard query. It takes no payload
// and never mutates any record.
func rpcLeaderboard(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	service := leaderboard.NewService(NewNakamaStatsAdapter(nk), NewNakamaAccountAdapter(nk))

	resp, err := service.Query(ctx)
	if err != nil {
		logger.Error("rpcLeaderboard: Query failed: %v", err)
		return "", err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		logger.Error("rpcLeaderboard: Failed to marshal response: %v", err)
		return "", err
	}
	return string(b), nil
}
