package nakama

import (
	"context"
	"fmt"

	"tictactoe/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
)

// userGetter is the slice of runtime.NakamaModule the adapter needs.
type userGetter interface {
	UsersGetId(ctx context.Context, userIDs []string, facebookIDs []string) ([]*api.User, error)
}

// NakamaAccountAdapter implements ports.AccountDirectory using Nakama's user API.
type NakamaAccountAdapter struct {
	users userGetter
}

// NewNakamaAccountAdapter creates a new account adapter.
func NewNakamaAccountAdapter(users userGetter) *NakamaAccountAdapter {
	return &NakamaAccountAdapter{users: users}
}

// DisplayNames resolves user IDs to display names, falling back to the
// account username when no display name is set. IDs with neither are omitted.
func (a *NakamaAccountAdapter) DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	if len(userIDs) == 0 {
		return map[string]string{}, nil
	}

	users, err := a.users.UsersGetId(ctx, userIDs, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	names := make(map[string]string, len(users))
	for _, user := range users {
		name := user.DisplayName
		if name == "" {
			name = user.Username
		}
		if name != "" {
			names[user.Id] = name
		}
	}
	return names, nil
}

var _ ports.AccountDirectory = (*NakamaAccountAdapter)(nil)
