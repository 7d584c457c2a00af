// Package session resolves the signed-in user and decides whether the
// owner-only quotation screen may navigate into records.
package session

import (
	"context"
	"slices"
	"strings"

	"quotedesk/internal/config"
	appErrors "quotedesk/internal/errors"
)

// Identity is the resolved user for authorized calls.
type Identity struct {
	UserID string
	Token  string
	Roles  []string
}

// HasRole reports whether the identity carries the role (case-insensitive).
func (i Identity) HasRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return true
	}
	return slices.ContainsFunc(i.Roles, func(r string) bool {
		return strings.ToLower(strings.TrimSpace(r)) == role
	})
}

// Resolver supplies the current identity.
type Resolver interface {
	Resolve(ctx context.Context) (Identity, error)
}

// ErrMissingIdentity is returned when no user id can be resolved.
var ErrMissingIdentity = appErrors.New(appErrors.CodeMissingIdentity, "no user identity configured (set auth.user-id or QD_AUTH_USER_ID)", nil)

// StaticResolver returns a fixed identity.
type StaticResolver struct {
	Identity Identity
}

// Resolve implements Resolver.
func (r StaticResolver) Resolve(ctx context.Context) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	if strings.TrimSpace(r.Identity.UserID) == "" {
		return Identity{}, ErrMissingIdentity
	}
	return r.Identity, nil
}

// FromConfig builds a resolver from the auth.* configuration keys.
func FromConfig() StaticResolver {
	return StaticResolver{Identity: Identity{
		UserID: strings.TrimSpace(config.GetString(config.KeyAuthUserID)),
		Token:  strings.TrimSpace(config.GetString(config.KeyAuthToken)),
		Roles:  config.GetStringSlice(config.KeyAuthRoles),
	}}
}

// Authorization is the outcome of the permission check for the owner-only
// screen.
type Authorization int

const (
	AuthorizationPending Authorization = iota
	AuthorizationGranted
	AuthorizationDenied
)

func (a Authorization) String() string {
	switch a {
	case AuthorizationGranted:
		return "granted"
	case AuthorizationDenied:
		return "denied"
	default:
		return "pending"
	}
}

// Authorize maps a resolution result onto an Authorization.
func Authorize(id Identity, err error, requiredRole string) Authorization {
	if err != nil || strings.TrimSpace(id.UserID) == "" {
		return AuthorizationDenied
	}
	if !id.HasRole(requiredRole) {
		return AuthorizationDenied
	}
	return AuthorizationGranted
}
