package application

import (
	"context"
	"regexp"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

// relationshipTypePattern is the allowlist for relationship type names.
// Types are spliced into Cypher as identifiers, so anything outside this
// shape is refused before it reaches the store.
var relationshipTypePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,63}$`)

// RelationshipService creates and deletes arbitrary typed edges between
// user nodes.
type RelationshipService struct {
	repo domain.RelationshipRepository
}

func NewRelationshipService(repo domain.RelationshipRepository) *RelationshipService {
	return &RelationshipService{repo: repo}
}

func (s *RelationshipService) Create(ctx context.Context, rel domain.Relationship) (string, error) {
	if err := validateRelationship(rel); err != nil {
		return "", err
	}
	return s.repo.Create(ctx, rel)
}

func (s *RelationshipService) Delete(ctx context.Context, rel domain.Relationship) error {
	if err := validateRelationship(rel); err != nil {
		return err
	}
	removed, err := s.repo.Delete(ctx, rel)
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func validateRelationship(rel domain.Relationship) error {
	if err := validateNodeID("source_id", rel.SourceID); err != nil {
		return err
	}
	if err := validateNodeID("target_id", rel.TargetID); err != nil {
		return err
	}
	if !relationshipTypePattern.MatchString(rel.Type) {
		return domain.RiskyType(rel.Type)
	}
	return nil
}

func validateNodeID(field string, value any) error {
	switch v := value.(type) {
	case string:
		if v == "" {
			return domain.Invalid(field, "is required")
		}
	case int, int64, float64:
	default:
		return domain.Invalid(field, "must be a string or a number")
	}
	return nil
}
