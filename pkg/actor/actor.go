// Package actor identifies the user performing a request so that
// authorization gates and the transaction log can see who is calling
// without every function signature carrying user details.
package actor

import (
	"context"
	"fmt"
)

// Actor represents the authenticated user behind a request.
type Actor struct {
	// ID is the unique identifier of the user
	ID string `json:"id"`

	// Name is the user's display name
	Name string `json:"name"`

	// Emails holds the user's registered email addresses
	Emails []string `json:"emails,omitempty"`

	// Admin marks users allowed to run aggregate reports and
	// administration endpoints
	Admin bool `json:"admin"`

	// Inactive marks disabled accounts; inactive actors fail every gate
	Inactive bool `json:"inactive"`
}

// PrimaryEmail returns the first registered email address, if any.
func (a *Actor) PrimaryEmail() string {
	if a == nil || len(a.Emails) == 0 {
		return ""
	}
	return a.Emails[0]
}

// String returns a string representation of the actor for logging
func (a *Actor) String() string {
	if a == nil {
		return "anonymous"
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.ID)
}

// contextKey is the type for context keys to avoid collisions
type contextKey string

const actorContextKey contextKey = "actor"

// FromContext retrieves the Actor from the context.
// Returns nil if no actor is present (unauthenticated request).
func FromContext(ctx context.Context) *Actor {
	if ctx == nil {
		return nil
	}
	a, ok := ctx.Value(actorContextKey).(*Actor)
	if !ok {
		return nil
	}
	return a
}

// WithActor returns a new context with the Actor attached.
func WithActor(ctx context.Context, a *Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorContextKey, a)
}
