package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/settings"
)

type fakeStore struct {
	globals map[string]any
	users   map[string]map[string]any
}

func (f *fakeStore) GlobalSetting(_ context.Context, key string) (any, bool, error) {
	v, ok := f.globals[key]
	return v, ok, nil
}

func (f *fakeStore) UserSetting(_ context.Context, userID, key string) (any, bool, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, false, nil
	}
	v, ok := u[key]
	return v, ok, nil
}

func TestProvider_Precedence(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{
		globals: map[string]any{
			domain.SettingDailyStartTime: "08:00",
		},
		users: map[string]map[string]any{
			"u1": {domain.SettingDailyStartTime: "10:00"},
		},
	}
	p := settings.NewProvider(store)

	// user override wins
	assert.Equal(t, "10:00", p.String(ctx, "u1", domain.SettingDailyStartTime))
	// no override: global default
	assert.Equal(t, "08:00", p.String(ctx, "u2", domain.SettingDailyStartTime))
	// no override, no global: hard-coded fallback
	assert.Equal(t, "12:00", p.String(ctx, "u2", domain.SettingBreakStartTime))
}

func TestProvider_FloatCoercion(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{
		globals: map[string]any{
			domain.SettingRegularWorkingTime: "7.5", // legacy string value
			domain.SettingBreakDuration:      1,
		},
	}
	p := settings.NewProvider(store)

	assert.Equal(t, 7.5, p.Float(ctx, "", domain.SettingRegularWorkingTime))
	assert.Equal(t, 1.0, p.Float(ctx, "", domain.SettingBreakDuration))
	// fallback value
	assert.Equal(t, 8.0, p.Float(ctx, "", domain.SettingHoursToDays))
}

func TestProvider_Bool(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{
		globals: map[string]any{
			domain.SettingEnableTransactions: "true",
		},
		users: map[string]map[string]any{
			"u1": {domain.SettingAddBreakToWorkingTime: true},
		},
	}
	p := settings.NewProvider(store)

	assert.True(t, p.Bool(ctx, "", domain.SettingEnableTransactions))
	assert.True(t, p.Bool(ctx, "u1", domain.SettingAddBreakToWorkingTime))
	assert.False(t, p.Bool(ctx, "u2", domain.SettingAddBreakToWorkingTime))
}
