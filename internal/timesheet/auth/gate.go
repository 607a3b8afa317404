// Package auth guards operations behind authentication and admin
// checks and resolves bearer tokens into request actors.
package auth

import (
	"context"

	"github.com/clockwerk/clockwerk-backend/pkg/actor"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
)

// RequireAuthenticated fails when no known, active actor is behind the
// request. It runs before the guarded operation; on failure the
// operation body never executes.
func RequireAuthenticated(a *actor.Actor) error {
	if a == nil || a.ID == "" {
		return errors.Unauthorized("authentication required")
	}
	if a.Inactive {
		return errors.Unauthorized("account is inactive")
	}
	return nil
}

// RequireAdmin additionally fails for non-administrators.
func RequireAdmin(a *actor.Actor) error {
	if err := RequireAuthenticated(a); err != nil {
		return err
	}
	if !a.Admin {
		return errors.AdminRequired()
	}
	return nil
}

// Gate is one pre-call check evaluated against the request context.
type Gate func(ctx context.Context) error

// Authenticated is RequireAuthenticated as a composable gate.
func Authenticated(ctx context.Context) error {
	return RequireAuthenticated(actor.FromContext(ctx))
}

// Admin is RequireAdmin as a composable gate.
func Admin(ctx context.Context) error {
	return RequireAdmin(actor.FromContext(ctx))
}

// Chain runs gates in order and stops at the first failure.
func Chain(gates ...Gate) Gate {
	return func(ctx context.Context) error {
		for _, g := range gates {
			if err := g(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
