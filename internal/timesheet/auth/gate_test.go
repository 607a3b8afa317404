package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/auth"
	"github.com/clockwerk/clockwerk-backend/pkg/actor"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
)

func TestRequireAuthenticated(t *testing.T) {
	assert.Error(t, auth.RequireAuthenticated(nil))
	assert.Error(t, auth.RequireAuthenticated(&actor.Actor{}))
	assert.Error(t, auth.RequireAuthenticated(&actor.Actor{ID: "u1", Inactive: true}))
	assert.NoError(t, auth.RequireAuthenticated(&actor.Actor{ID: "u1"}))
}

func TestRequireAdmin(t *testing.T) {
	err := auth.RequireAdmin(&actor.Actor{ID: "u1"})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "ADMIN_REQUIRED", appErr.Code)

	assert.NoError(t, auth.RequireAdmin(&actor.Actor{ID: "u1", Admin: true}))

	// inactive admins fail the authentication part of the gate
	err = auth.RequireAdmin(&actor.Actor{ID: "u1", Admin: true, Inactive: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestChain_StopsAtFirstFailure(t *testing.T) {
	calls := 0
	pass := func(context.Context) error { calls++; return nil }
	fail := func(context.Context) error { calls++; return errors.Unauthorized("no") }

	err := auth.Chain(pass, fail, pass)(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestGates_ReadActorFromContext(t *testing.T) {
	ctx := actor.WithActor(context.Background(), &actor.Actor{ID: "u1", Admin: true})
	assert.NoError(t, auth.Authenticated(ctx))
	assert.NoError(t, auth.Admin(ctx))

	assert.Error(t, auth.Authenticated(context.Background()))
}
