package graph

import (
	"context"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

// PresenceRepository runs the check-in domain's queries.
type PresenceRepository struct {
	client Client
}

func NewPresenceRepository(client Client) *PresenceRepository {
	return &PresenceRepository{client: client}
}

func (r *PresenceRepository) CreatePerson(ctx context.Context, value domain.Person) (domain.Person, error) {
	const cypher = `
		CREATE (p:Person {id: $id, name: $name, role: $role})
		RETURN p.id AS id, p.name AS name, p.role AS role`
	result, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{
		"id":   value.ID,
		"name": value.Name,
		"role": value.Role,
	})
	if err != nil {
		return domain.Person{}, domain.WrapStore("create person", err)
	}
	if len(result.Records) == 0 {
		return domain.Person{}, domain.WrapStore("create person", domain.ErrNotFound)
	}
	rec := result.Records[0]
	return domain.Person{
		ID:   recInt64(rec, "id"),
		Name: recString(rec, "name"),
		Role: recString(rec, "role"),
	}, nil
}

func (r *PresenceRepository) CreateOrganization(ctx context.Context, id int64) (domain.Organization, error) {
	const cypher = `
		CREATE (o:Organization {id: $id})
		RETURN o.id AS id`
	result, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{"id": id})
	if err != nil {
		return domain.Organization{}, domain.WrapStore("create organization", err)
	}
	if len(result.Records) == 0 {
		return domain.Organization{}, domain.WrapStore("create organization", domain.ErrNotFound)
	}
	return domain.Organization{ID: recInt64(result.Records[0], "id")}, nil
}

func (r *PresenceRepository) CheckIn(ctx context.Context, userID, orgID int64) (bool, error) {
	const cypher = `
		MATCH (u:Person {id: $user_id}), (o:Organization {id: $org_id})
		MERGE (u)-[r:CHECKED_IN]->(o)
		RETURN r`
	result, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{
		"user_id": userID,
		"org_id":  orgID,
	})
	if err != nil {
		return false, domain.WrapStore("check in", err)
	}
	return len(result.Records) > 0, nil
}

func (r *PresenceRepository) ActiveUsersByRole(ctx context.Context, orgID *int64) ([]domain.RoleGroup, error) {
	cypher := `
		MATCH (u:Person)-[:CHECKED_IN]->(:Organization)
		RETURN u.role AS role, collect({id: u.id, name: u.name}) AS users`
	params := map[string]any{}
	if orgID != nil {
		cypher = `
		MATCH (u:Person)-[:CHECKED_IN]->(:Organization {id: $org_id})
		RETURN u.role AS role, collect({id: u.id, name: u.name}) AS users`
		params["org_id"] = *orgID
	}
	result, err := r.client.ExecuteRead(ctx, cypher, params)
	if err != nil {
		return nil, domain.WrapStore("list active users", err)
	}

	groups := make([]domain.RoleGroup, 0, len(result.Records))
	for _, rec := range result.Records {
		group := domain.RoleGroup{Role: recString(rec, "role")}
		members, _ := rec["users"].([]any)
		for _, member := range members {
			props, ok := member.(map[string]any)
			if !ok {
				continue
			}
			group.Users = append(group.Users, domain.PersonSummary{
				ID:   recInt64(props, "id"),
				Name: recString(props, "name"),
			})
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (r *PresenceRepository) CheckoutNonAdmin(ctx context.Context, orgID int64) (int, error) {
	const cypher = `
		MATCH (u:Person)-[r:CHECKED_IN]->(o:Organization {id: $org_id})
		WHERE u.role <> 'admin'
		DELETE r`
	result, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{"org_id": orgID})
	if err != nil {
		return 0, domain.WrapStore("checkout non-admin", err)
	}
	return result.Counters.RelationshipsDeleted, nil
}

func (r *PresenceRepository) CheckoutAdmin(ctx context.Context, orgID int64) (int, error) {
	const cypher = `
		MATCH (u:Person {role: 'admin'})-[r:CHECKED_IN]->(o:Organization {id: $org_id})
		DELETE r`
	result, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{"org_id": orgID})
	if err != nil {
		return 0, domain.WrapStore("checkout admin", err)
	}
	return result.Counters.RelationshipsDeleted, nil
}

func (r *PresenceRepository) SetHours(ctx context.Context, orgID int64, opening, closing string) error {
	const cypher = `
		MATCH (o:Organization {id: $org_id})
		SET o.opening_time = $opening, o.closing_time = $closing`
	_, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{
		"org_id":  orgID,
		"opening": opening,
		"closing": closing,
	})
	return domain.WrapStore("set hours", err)
}

func (r *PresenceRepository) OrganizationHours(ctx context.Context, orgID int64) (domain.OperatingHours, error) {
	const cypher = `
		MATCH (o:Organization {id: $org_id})
		RETURN o.opening_time AS opening, o.closing_time AS closing`
	result, err := r.client.ExecuteRead(ctx, cypher, map[string]any{"org_id": orgID})
	if err != nil {
		return domain.OperatingHours{}, domain.WrapStore("organization hours", err)
	}
	if len(result.Records) == 0 {
		return domain.OperatingHours{}, domain.ErrNotFound
	}
	rec := result.Records[0]
	return domain.OperatingHours{
		Opening: recString(rec, "opening"),
		Closing: recString(rec, "closing"),
	}, nil
}
