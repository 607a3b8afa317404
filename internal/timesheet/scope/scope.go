// Package scope resolves which project IDs a user is authorized to
// report against: projects they own, public projects, and projects
// whose team they belong to, excluding archived ones.
package scope

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
)

// ProjectFinder executes a filter against the projects collection.
type ProjectFinder interface {
	Find(ctx context.Context, filter bson.M) ([]domain.Project, error)
}

// Resolver computes project scopes.
type Resolver struct {
	projects ProjectFinder
}

// NewResolver creates a scope resolver over the given project store.
func NewResolver(projects ProjectFinder) *Resolver {
	return &Resolver{projects: projects}
}

// VisibilityFilter is the baked-in ownership predicate: owner, public or
// team member, and not archived. An absent archived field counts as not
// archived, hence $ne instead of an equality check on false.
func VisibilityFilter(userID string) bson.M {
	return bson.M{
		"$or": bson.A{
			bson.M{"userId": userID},
			bson.M{"public": true},
			bson.M{"team": userID},
		},
		"archived": bson.M{"$ne": true},
	}
}

// ByProjectIDs returns the project IDs visible to userID. A concrete
// selector is intersected with the visibility predicate, so naming a
// project ID grants nothing beyond what the predicate allows. No match
// yields an empty slice, never an error.
func (r *Resolver) ByProjectIDs(ctx context.Context, userID string, selector domain.Selector) ([]string, error) {
	filter := VisibilityFilter(userID)
	if !selector.All {
		filter["_id"] = bson.M{"$in": idsOrEmpty(selector.IDs)}
	}
	return r.findIDs(ctx, filter)
}

// ByCustomer returns the visible project IDs belonging to the given
// customer(s). The visibility predicate applies regardless of the
// customer selection.
func (r *Resolver) ByCustomer(ctx context.Context, userID string, selector domain.Selector) ([]string, error) {
	filter := VisibilityFilter(userID)
	if !selector.All {
		filter["customer"] = bson.M{"$in": idsOrEmpty(selector.IDs)}
	}
	return r.findIDs(ctx, filter)
}

func (r *Resolver) findIDs(ctx context.Context, filter bson.M) ([]string, error) {
	projects, err := r.projects.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// idsOrEmpty keeps $in well-formed when the selector carries no IDs.
func idsOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
