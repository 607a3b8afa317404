// Package settings resolves configuration values with an explicit
// precedence: per-user override, then global default, then the
// hard-coded fallback. Components receive a Provider instead of
// reaching into shared state.
package settings

import (
	"context"
	"strconv"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
)

// Store looks up raw setting values. Backed by the users and
// globalSettings collections in production, by fakes in tests.
type Store interface {
	// GlobalSetting returns the process-wide value for key, if present.
	GlobalSetting(ctx context.Context, key string) (any, bool, error)

	// UserSetting returns the per-user override for key, if present.
	UserSetting(ctx context.Context, userID, key string) (any, bool, error)
}

// Fallbacks applied when neither a user override nor a global default exists.
var fallbacks = map[string]any{
	domain.SettingStartOfWeek:           1, // Monday
	domain.SettingTimeUnit:              "h",
	domain.SettingHoursToDays:           8.0,
	domain.SettingWeekviewDateFormat:    "Jan 02",
	domain.SettingDateFormat:            "01/02/2006",
	domain.SettingDailyStartTime:        "09:00",
	domain.SettingBreakStartTime:        "12:00",
	domain.SettingBreakDuration:         0.5,
	domain.SettingRegularWorkingTime:    8.0,
	domain.SettingAddBreakToWorkingTime: false,
	domain.SettingEnableTransactions:    false,
}

// Provider resolves settings for a given user.
type Provider struct {
	store Store
}

// NewProvider creates a settings provider over the given store.
func NewProvider(store Store) *Provider {
	return &Provider{store: store}
}

// Get resolves key for userID through the precedence chain. An empty
// userID skips the override lookup and resolves globally.
func (p *Provider) Get(ctx context.Context, userID, key string) any {
	if userID != "" {
		if v, ok, err := p.store.UserSetting(ctx, userID, key); err == nil && ok {
			return v
		}
	}
	if v, ok, err := p.store.GlobalSetting(ctx, key); err == nil && ok {
		return v
	}
	return fallbacks[key]
}

// String resolves key as a string.
func (p *Provider) String(ctx context.Context, userID, key string) string {
	switch v := p.Get(ctx, userID, key).(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return ""
	}
}

// Float resolves key as a float64. Stored hour values are sometimes
// strings, so numeric strings are coerced.
func (p *Provider) Float(ctx context.Context, userID, key string) float64 {
	switch v := p.Get(ctx, userID, key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

// Int resolves key as an int.
func (p *Provider) Int(ctx context.Context, userID, key string) int {
	return int(p.Float(ctx, userID, key))
}

// Bool resolves key as a bool. The string values "true" and "false" are
// accepted for legacy global settings rows.
func (p *Provider) Bool(ctx context.Context, userID, key string) bool {
	switch v := p.Get(ctx, userID, key).(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
