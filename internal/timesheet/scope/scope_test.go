package scope_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/scope"
)

// fakeFinder evaluates the resolver's filters against an in-memory
// project list, mimicking the document store's matching semantics for
// the filter shapes the resolver emits.
type fakeFinder struct {
	projects []domain.Project
}

func (f *fakeFinder) Find(_ context.Context, filter bson.M) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range f.projects {
		if matches(filter, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matches(filter bson.M, p domain.Project) bool {
	if or, ok := filter["$or"].(bson.A); ok {
		hit := false
		for _, clause := range or {
			c := clause.(bson.M)
			if v, ok := c["userId"]; ok && p.UserID == v {
				hit = true
			}
			if v, ok := c["public"]; ok && p.Public == v {
				hit = true
			}
			if v, ok := c["team"]; ok && contains(p.Team, v.(string)) {
				hit = true
			}
		}
		if !hit {
			return false
		}
	}
	if arch, ok := filter["archived"].(bson.M); ok {
		if ne, ok := arch["$ne"]; ok && p.Archived == ne {
			return false
		}
	}
	if id, ok := filter["_id"].(bson.M); ok {
		if !contains(id["$in"].([]string), p.ID) {
			return false
		}
	}
	if cust, ok := filter["customer"].(bson.M); ok {
		if !contains(cust["$in"].([]string), p.Customer) {
			return false
		}
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func testProjects() []domain.Project {
	return []domain.Project{
		{ID: "p1", UserID: "alice", Customer: "acme"},
		{ID: "p2", UserID: "bob", Customer: "acme"},
		{ID: "p3", UserID: "bob", Public: true, Customer: "globex"},
		{ID: "p4", UserID: "bob", Team: []string{"alice", "carol"}},
		{ID: "p5", UserID: "alice", Archived: true},
		{ID: "p6", UserID: "bob", Public: true, Archived: true},
	}
}

func TestByProjectIDs_All(t *testing.T) {
	r := scope.NewResolver(&fakeFinder{projects: testProjects()})

	ids, err := r.ByProjectIDs(context.Background(), "alice", domain.AllSelector())
	require.NoError(t, err)

	// owned, public, team-shared; never archived
	assert.ElementsMatch(t, []string{"p1", "p3", "p4"}, ids)
}

func TestByProjectIDs_ConcreteIDsIntersected(t *testing.T) {
	r := scope.NewResolver(&fakeFinder{projects: testProjects()})

	// alice names p1 (hers) and p2 (bob's private): only p1 comes back,
	// and naming p2 is not an error.
	ids, err := r.ByProjectIDs(context.Background(), "alice", domain.IDSelector("p1", "p2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestByProjectIDs_ArchivedExcluded(t *testing.T) {
	r := scope.NewResolver(&fakeFinder{projects: testProjects()})

	// p5 is alice's own but archived; p6 is public but archived.
	ids, err := r.ByProjectIDs(context.Background(), "alice", domain.IDSelector("p5", "p6"))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestByProjectIDs_NoMatchIsEmptyNotError(t *testing.T) {
	r := scope.NewResolver(&fakeFinder{projects: testProjects()})

	ids, err := r.ByProjectIDs(context.Background(), "mallory", domain.IDSelector("p1"))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestByCustomer(t *testing.T) {
	r := scope.NewResolver(&fakeFinder{projects: testProjects()})

	// acme projects visible to alice: p1 (owned). p2 belongs to acme but
	// is bob's private project, so the visibility predicate still applies.
	ids, err := r.ByCustomer(context.Background(), "alice", domain.IDSelector("acme"))
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestByCustomer_All(t *testing.T) {
	r := scope.NewResolver(&fakeFinder{projects: testProjects()})

	ids, err := r.ByCustomer(context.Background(), "bob", domain.AllSelector())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p2", "p3", "p4"}, ids)
}
