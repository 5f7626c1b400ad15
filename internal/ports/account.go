package ports

import "context"

// AccountDirectory resolves user IDs to profile display names.
type AccountDirectory interface {
	// DisplayNames returns the best available profile name per user ID.
	// IDs with no resolvable name may be absent from the result.
	DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}
