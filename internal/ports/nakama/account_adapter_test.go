package nakama

import (
	"context"
	"errors"
	"testing"

	"github.com/heroiclabs/nakama-common/api"
)

type fakeUserGetter struct {
	users []*api.User
	err   error
}

func (f *fakeUserGetter) UsersGetId(ctx context.Context, userIDs []string, facebookIDs []string) ([]*api.User, error) {
	return f.users, f.err
}

func TestDisplayNamesPrefersDisplayNameOverUsername(t *testing.T) {
	adapter := NewNakamaAccountAdapter(&fakeUserGetter{users: []*api.User{
		{Id: "u1", Username: "user-one", DisplayName: "Player One"},
		{Id: "u2", Username: "user-two", DisplayName: ""},
		{Id: "u3", Username: "", DisplayName: ""},
	}})

	names, err := adapter.DisplayNames(context.Background(), []string{"u1", "u2", "u3"})
	if err != nil {
		t.Fatalf("DisplayNames: %v", err)
	}
	if names["u1"] != "Player One" {
		t.Fatalf("u1 = %q, want display name", names["u1"])
	}
	if names["u2"] != "user-two" {
		t.Fatalf("u2 = %q, want username fallback", names["u2"])
	}
	if _, ok := names["u3"]; ok {
		t.Fatal("u3 has no name at all and must be omitted")
	}
}

func TestDisplayNamesEmptyInputSkipsTheLookup(t *testing.T) {
	adapter := NewNakamaAccountAdapter(&fakeUserGetter{err: errors.New("must not be called")})

	names, err := adapter.DisplayNames(context.Background(), nil)
	if err != nil {
		t.Fatalf("DisplayNames: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("names = %v, want empty", names)
	}
}

func TestDisplayNamesPropagatesLookupFailure(t *testing.T) {
	adapter := NewNakamaAccountAdapter(&fakeUserGetter{err: errors.New("accounts down")})

	if _, err := adapter.DisplayNames(context.Background(), []string{"u1"}); err == nil {
		t.Fatal("expected lookup failure to propagate")
	}
}
