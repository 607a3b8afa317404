// Package bootstrap creates throwaway demo accounts with seeded
// example data, so the app can be tried without registering.
package bootstrap

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/auth"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

var adjectives = []string{
	"brave", "calm", "clever", "eager", "gentle", "jolly",
	"keen", "lively", "merry", "nimble", "proud", "swift",
}

var animals = []string{
	"badger", "falcon", "heron", "lynx", "marmot", "otter",
	"owl", "panda", "raven", "seal", "stoat", "wombat",
}

// nameAttempts bounds the search for an unused account name.
const nameAttempts = 10

// UserStore is the account surface the bootstrapper needs.
type UserStore interface {
	GetByName(ctx context.Context, name string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// ProjectStore creates seeded projects.
type ProjectStore interface {
	Create(ctx context.Context, project *domain.Project) error
}

// EntryStore persists seeded time entries.
type EntryStore interface {
	InsertMany(ctx context.Context, entries []domain.TimeEntry) ([]domain.TimeEntry, error)
}

// Publisher announces created demo accounts.
type Publisher interface {
	PublishDemoAccountCreated(ctx context.Context, user *domain.User)
}

// Bootstrapper creates demo accounts
type Bootstrapper struct {
	users     UserStore
	projects  ProjectStore
	entries   EntryStore
	tokens    *auth.TokenManager
	publisher Publisher
	logger    *logger.Logger

	rng *rand.Rand
	now func() time.Time
}

// New creates a demo account bootstrapper
func New(
	users UserStore,
	projects ProjectStore,
	entries EntryStore,
	tokens *auth.TokenManager,
	publisher Publisher,
	log *logger.Logger,
) *Bootstrapper {
	return &Bootstrapper{
		users:     users,
		projects:  projects,
		entries:   entries,
		tokens:    tokens,
		publisher: publisher,
		logger:    log,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// DemoAccount is a freshly created demo login.
type DemoAccount struct {
	User  *domain.User `json:"user"`
	Token *auth.Token  `json:"token"`
}

// CreateDemoAccount creates a demo user with a generated name, a seeded
// project with a few entries, and an access token for immediate use.
func (b *Bootstrapper) CreateDemoAccount(ctx context.Context) (*DemoAccount, error) {
	name, err := b.unusedName(ctx)
	if err != nil {
		return nil, err
	}

	// The password is random and never shown; demo logins go through the
	// issued token only.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("failed to hash password")
	}

	user := &domain.User{
		Name:         name,
		PasswordHash: string(hash),
		Demo:         true,
	}
	if err := b.users.Create(ctx, user); err != nil {
		b.logger.Error().Err(err).Str("name", name).Msg("failed to create demo user")
		return nil, errors.Internal("failed to create demo account")
	}

	if err := b.seedExampleData(ctx, user); err != nil {
		// the account itself is usable, seeding is cosmetic
		b.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to seed demo data")
	}

	token, err := b.tokens.Generate(user)
	if err != nil {
		return nil, errors.Internal("failed to generate token")
	}

	b.publisher.PublishDemoAccountCreated(ctx, user)
	b.logger.Info().Str("user_id", user.ID).Str("name", name).Msg("demo account created")

	return &DemoAccount{User: user, Token: token}, nil
}

// unusedName draws generated names until one is free.
func (b *Bootstrapper) unusedName(ctx context.Context) (string, error) {
	for i := 0; i < nameAttempts; i++ {
		name := b.generateName()
		if _, err := b.users.GetByName(ctx, name); errors.Is(err, errors.ErrNotFound) {
			return name, nil
		}
	}
	return "", errors.Internal("failed to find an unused demo name")
}

func (b *Bootstrapper) generateName() string {
	adjective := adjectives[b.rng.Intn(len(adjectives))]
	animal := animals[b.rng.Intn(len(animals))]
	return fmt.Sprintf("%s-%s-%02d", adjective, animal, b.rng.Intn(100))
}

// seedExampleData gives the fresh account one project and a few entries
// spread over the current week, so reports are not empty on first view.
func (b *Bootstrapper) seedExampleData(ctx context.Context, user *domain.User) error {
	project := &domain.Project{
		Name:     "Getting Started",
		Color:    "#4d7faa",
		Customer: "demo",
		UserID:   user.ID,
	}
	if err := b.projects.Create(ctx, project); err != nil {
		return err
	}

	today := b.today()
	entries := []domain.TimeEntry{
		{ProjectID: project.ID, Task: "explore the app", Date: today, Hours: 1.5, UserID: user.ID},
		{ProjectID: project.ID, Task: "track some time", Date: today.AddDate(0, 0, -1), Hours: 3, UserID: user.ID},
		{ProjectID: project.ID, Task: "run a report", Date: today.AddDate(0, 0, -2), Hours: 2, UserID: user.ID},
	}

	_, err := b.entries.InsertMany(ctx, entries)
	return err
}

func (b *Bootstrapper) today() time.Time {
	n := b.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}
