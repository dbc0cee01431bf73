package graph

import (
	"context"
	"strings"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

const socialUserProjection = `u.id AS id, u.name AS name, u.email AS email, u.age AS age, u.gender AS gender`

// SocialRepository runs the social graph's queries.
type SocialRepository struct {
	client Client
}

func NewSocialRepository(client Client) *SocialRepository {
	return &SocialRepository{client: client}
}

func (r *SocialRepository) CreateUser(ctx context.Context, value domain.SocialUser) (domain.SocialUser, error) {
	const cypher = `
		CREATE (u:User {id: $id, name: $name, email: $email, age: $age, gender: $gender})
		RETURN ` + socialUserProjection
	result, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{
		"id":     value.ID,
		"name":   value.Name,
		"email":  value.Email,
		"age":    value.Age,
		"gender": value.Gender,
	})
	if err != nil {
		return domain.SocialUser{}, domain.WrapStore("create user", err)
	}
	if len(result.Records) == 0 {
		return domain.SocialUser{}, domain.WrapStore("create user", domain.ErrNotFound)
	}
	return socialUserFrom(result.Records[0]), nil
}

func (r *SocialRepository) ListUsers(ctx context.Context) ([]domain.SocialUser, error) {
	const cypher = `
		MATCH (u:User)
		RETURN ` + socialUserProjection
	result, err := r.client.ExecuteRead(ctx, cypher, nil)
	if err != nil {
		return nil, domain.WrapStore("list users", err)
	}
	users := make([]domain.SocialUser, 0, len(result.Records))
	for _, rec := range result.Records {
		users = append(users, socialUserFrom(rec))
	}
	return users, nil
}

func (r *SocialRepository) GetUser(ctx context.Context, id string) (domain.SocialUser, error) {
	const cypher = `
		MATCH (u:User {id: $id})
		RETURN ` + socialUserProjection
	result, err := r.client.ExecuteRead(ctx, cypher, map[string]any{"id": id})
	if err != nil {
		return domain.SocialUser{}, domain.WrapStore("get user", err)
	}
	if len(result.Records) == 0 {
		return domain.SocialUser{}, domain.ErrNotFound
	}
	return socialUserFrom(result.Records[0]), nil
}

// UpdateUser sets only the provided fields. Clause text is assembled from a
// fixed field set; values travel as bound parameters.
func (r *SocialRepository) UpdateUser(ctx context.Context, id string, update domain.SocialUserUpdate) (domain.SocialUser, error) {
	clauses := make([]string, 0, 4)
	params := map[string]any{"id": id}
	if update.Name != nil {
		clauses = append(clauses, "u.name = $name")
		params["name"] = *update.Name
	}
	if update.Email != nil {
		clauses = append(clauses, "u.email = $email")
		params["email"] = *update.Email
	}
	if update.Age != nil {
		clauses = append(clauses, "u.age = $age")
		params["age"] = *update.Age
	}
	if update.Gender != nil {
		clauses = append(clauses, "u.gender = $gender")
		params["gender"] = *update.Gender
	}

	cypher := `
		MATCH (u:User {id: $id})
		SET ` + strings.Join(clauses, ", ") + `
		RETURN ` + socialUserProjection
	result, err := r.client.ExecuteWrite(ctx, cypher, params)
	if err != nil {
		return domain.SocialUser{}, domain.WrapStore("update user", err)
	}
	if len(result.Records) == 0 {
		return domain.SocialUser{}, domain.ErrNotFound
	}
	return socialUserFrom(result.Records[0]), nil
}

// DeleteUser detaches the node so dangling FOLLOW/LIKE edges go with it.
func (r *SocialRepository) DeleteUser(ctx context.Context, id string) error {
	const cypher = `
		MATCH (u:User {id: $id})
		DETACH DELETE u`
	result, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{"id": id})
	if err != nil {
		return domain.WrapStore("delete user", err)
	}
	if result.Counters.NodesDeleted == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SocialRepository) CreatePost(ctx context.Context, value domain.Post) (domain.Post, error) {
	const cypher = `
		CREATE (p:Post {id: $id, content: $content, timestamp: $timestamp})
		RETURN p.id AS id, p.content AS content, p.timestamp AS timestamp`
	result, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{
		"id":        value.ID,
		"content":   value.Content,
		"timestamp": value.Timestamp,
	})
	if err != nil {
		return domain.Post{}, domain.WrapStore("create post", err)
	}
	if len(result.Records) == 0 {
		return domain.Post{}, domain.WrapStore("create post", domain.ErrNotFound)
	}
	rec := result.Records[0]
	return domain.Post{
		ID:        recString(rec, "id"),
		Content:   recString(rec, "content"),
		Timestamp: recString(rec, "timestamp"),
	}, nil
}

func (r *SocialRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	const cypher = `
		MATCH (follower:User {id: $follower_id}), (followee:User {id: $followee_id})
		CREATE (follower)-[:FOLLOW]->(followee)`
	_, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{
		"follower_id": followerID,
		"followee_id": followeeID,
	})
	return domain.WrapStore("follow", err)
}

func (r *SocialRepository) Like(ctx context.Context, userID, postID string) error {
	const cypher = `
		MATCH (user:User {id: $user_id}), (post:Post {id: $post_id})
		CREATE (user)-[:LIKE]->(post)`
	_, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{
		"user_id": userID,
		"post_id": postID,
	})
	return domain.WrapStore("like", err)
}

func (r *SocialRepository) Followers(ctx context.Context, userID string) ([]domain.SocialUser, error) {
	const cypher = `
		MATCH (u:User)-[:FOLLOW]->(:User {id: $user_id})
		RETURN ` + socialUserProjection
	return r.listNeighbors(ctx, "followers", cypher, map[string]any{"user_id": userID})
}

func (r *SocialRepository) Following(ctx context.Context, userID string) ([]domain.SocialUser, error) {
	const cypher = `
		MATCH (:User {id: $user_id})-[:FOLLOW]->(u:User)
		RETURN ` + socialUserProjection
	return r.listNeighbors(ctx, "following", cypher, map[string]any{"user_id": userID})
}

func (r *SocialRepository) Likes(ctx context.Context, postID string) ([]domain.SocialUser, error) {
	const cypher = `
		MATCH (u:User)-[:LIKE]->(:Post {id: $post_id})
		RETURN ` + socialUserProjection
	return r.listNeighbors(ctx, "likes", cypher, map[string]any{"post_id": postID})
}

func (r *SocialRepository) listNeighbors(ctx context.Context, op, cypher string, params map[string]any) ([]domain.SocialUser, error) {
	result, err := r.client.ExecuteRead(ctx, cypher, params)
	if err != nil {
		return nil, domain.WrapStore(op, err)
	}
	users := make([]domain.SocialUser, 0, len(result.Records))
	for _, rec := range result.Records {
		users = append(users, socialUserFrom(rec))
	}
	return users, nil
}

func socialUserFrom(rec Record) domain.SocialUser {
	return domain.SocialUser{
		ID:     recString(rec, "id"),
		Name:   recString(rec, "name"),
		Email:  recString(rec, "email"),
		Age:    recInt64(rec, "age"),
		Gender: recString(rec, "gender"),
	}
}
