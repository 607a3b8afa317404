package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/auth"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/pkg/config"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

type memoryUsers struct {
	byName map[string]*domain.User
}

func (m *memoryUsers) GetByName(_ context.Context, name string) (*domain.User, error) {
	if u, ok := m.byName[name]; ok {
		return u, nil
	}
	return nil, errors.NotFound("user")
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = "u-" + user.Name
	}
	m.byName[user.Name] = user
	return nil
}

type memoryProjects struct {
	created []*domain.Project
}

func (m *memoryProjects) Create(_ context.Context, project *domain.Project) error {
	project.ID = "p-demo"
	m.created = append(m.created, project)
	return nil
}

type memoryEntries struct {
	inserted []domain.TimeEntry
}

func (m *memoryEntries) InsertMany(_ context.Context, entries []domain.TimeEntry) ([]domain.TimeEntry, error) {
	m.inserted = append(m.inserted, entries...)
	return entries, nil
}

type countingPublisher struct {
	created int
}

func (p *countingPublisher) PublishDemoAccountCreated(_ context.Context, _ *domain.User) {
	p.created++
}

func newBootstrapper(users *memoryUsers, projects *memoryProjects, entries *memoryEntries, publisher *countingPublisher) *Bootstrapper {
	tokens := auth.NewTokenManager(&config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: time.Hour,
		Issuer:       "clockwerk-test",
	})
	b := New(users, projects, entries, tokens, publisher, logger.New("bootstrap-test", "test"))
	b.now = func() time.Time { return time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC) }
	return b
}

func TestCreateDemoAccount(t *testing.T) {
	users := &memoryUsers{byName: map[string]*domain.User{}}
	projects := &memoryProjects{}
	entries := &memoryEntries{}
	publisher := &countingPublisher{}

	account, err := newBootstrapper(users, projects, entries, publisher).CreateDemoAccount(context.Background())
	require.NoError(t, err)

	require.NotNil(t, account.User)
	assert.True(t, account.User.Demo)
	assert.NotEmpty(t, account.User.PasswordHash)
	assert.Len(t, strings.Split(account.User.Name, "-"), 3)

	require.NotNil(t, account.Token)
	assert.NotEmpty(t, account.Token.AccessToken)

	require.Len(t, projects.created, 1)
	assert.Equal(t, account.User.ID, projects.created[0].UserID)

	require.Len(t, entries.inserted, 3)
	for _, e := range entries.inserted {
		assert.Equal(t, account.User.ID, e.UserID)
		assert.Equal(t, "p-demo", e.ProjectID)
		assert.False(t, e.Date.After(time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)))
	}

	assert.Equal(t, 1, publisher.created)
}

func TestGenerateName_Format(t *testing.T) {
	users := &memoryUsers{byName: map[string]*domain.User{}}
	b := newBootstrapper(users, &memoryProjects{}, &memoryEntries{}, &countingPublisher{})

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		name := b.generateName()
		parts := strings.Split(name, "-")
		require.Len(t, parts, 3)
		assert.Contains(t, adjectives, parts[0])
		assert.Contains(t, animals, parts[1])
		seen[name] = true
	}
	assert.Greater(t, len(seen), 1, "names vary")
}

func TestUnusedName_GivesUpAfterCollisions(t *testing.T) {
	users := &memoryUsers{byName: map[string]*domain.User{}}
	b := newBootstrapper(users, &memoryProjects{}, &memoryEntries{}, &countingPublisher{})

	// occupy every possible name so the search always collides
	for _, adjective := range adjectives {
		for _, animal := range animals {
			for n := 0; n < 100; n++ {
				name := fmt.Sprintf("%s-%s-%02d", adjective, animal, n)
				users.byName[name] = &domain.User{Name: name}
			}
		}
	}

	_, err := b.unusedName(context.Background())
	assert.True(t, errors.Is(err, errors.ErrInternal))
}
