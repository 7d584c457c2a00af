package session

import (
	"context"
	"errors"
	"testing"

	"quotedesk/internal/config"
	appErrors "quotedesk/internal/errors"
)

func TestStaticResolver(t *testing.T) {
	t.Run("MissingUserID", func(t *testing.T) {
		_, err := StaticResolver{}.Resolve(context.Background())
		if !appErrors.IsCode(err, appErrors.CodeMissingIdentity) {
			t.Fatalf("expected missing identity error, got %v", err)
		}
	})

	t.Run("Resolved", func(t *testing.T) {
		want := Identity{UserID: "u-1", Token: "tok", Roles: []string{"owner"}}
		got, err := StaticResolver{Identity: want}.Resolve(context.Background())
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if got.UserID != "u-1" || got.Token != "tok" {
			t.Fatalf("unexpected identity %+v", got)
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := StaticResolver{Identity: Identity{UserID: "u-1"}}.Resolve(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestAuthorize(t *testing.T) {
	owner := Identity{UserID: "u-1", Roles: []string{"Owner"}}
	viewer := Identity{UserID: "u-2", Roles: []string{"viewer"}}

	cases := []struct {
		name string
		id   Identity
		err  error
		role string
		want Authorization
	}{
		{"owner granted", owner, nil, "owner", AuthorizationGranted},
		{"viewer denied", viewer, nil, "owner", AuthorizationDenied},
		{"no role required", viewer, nil, "", AuthorizationGranted},
		{"resolution failed", owner, ErrMissingIdentity, "owner", AuthorizationDenied},
		{"blank user", Identity{Roles: []string{"owner"}}, nil, "owner", AuthorizationDenied},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Authorize(tc.id, tc.err, tc.role); got != tc.want {
				t.Fatalf("Authorize = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	cleanup := config.ResetForTesting(t)
	t.Cleanup(cleanup)

	if err := config.ApplyOverrides(map[string]any{
		config.KeyAuthUserID: " u-7 ",
		config.KeyAuthToken:  "secret",
		config.KeyAuthRoles:  []string{"owner", "buyer"},
	}); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}

	r := FromConfig()
	if r.Identity.UserID != "u-7" || r.Identity.Token != "secret" {
		t.Fatalf("unexpected identity %+v", r.Identity)
	}
	if !r.Identity.HasRole("buyer") {
		t.Fatalf("expected buyer role in %v", r.Identity.Roles)
	}
}
