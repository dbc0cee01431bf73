package graph

import (
	"context"
	"fmt"
	"regexp"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

// typeNamePattern is the final gate before a relationship type name is
// spliced into query text. Everything else travels as bound parameters.
var typeNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,63}$`)

// RelationshipRepository creates and deletes caller-typed edges between
// nodes addressed by their id property.
type RelationshipRepository struct {
	client Client
}

func NewRelationshipRepository(client Client) *RelationshipRepository {
	return &RelationshipRepository{client: client}
}

func (r *RelationshipRepository) Create(ctx context.Context, value domain.Relationship) (string, error) {
	if !typeNamePattern.MatchString(value.Type) {
		return "", domain.RiskyType(value.Type)
	}
	cypher := fmt.Sprintf(`
		MATCH (source {id: $source_id}), (target {id: $target_id})
		CREATE (source)-[r:%s]->(target)
		RETURN elementId(r) AS relationship_id`, value.Type)
	result, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{
		"source_id": value.SourceID,
		"target_id": value.TargetID,
	})
	if err != nil {
		return "", domain.WrapStore("create relationship", err)
	}
	if len(result.Records) == 0 {
		return "", domain.ErrNotFound
	}
	return recString(result.Records[0], "relationship_id"), nil
}

func (r *RelationshipRepository) Delete(ctx context.Context, value domain.Relationship) (int, error) {
	if !typeNamePattern.MatchString(value.Type) {
		return 0, domain.RiskyType(value.Type)
	}
	cypher := fmt.Sprintf(`
		MATCH (source {id: $source_id})-[r:%s]->(target {id: $target_id})
		DELETE r`, value.Type)
	result, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{
		"source_id": value.SourceID,
		"target_id": value.TargetID,
	})
	if err != nil {
		return 0, domain.WrapStore("delete relationship", err)
	}
	return result.Counters.RelationshipsDeleted, nil
}
