package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

// SocialService manages the user/post graph and its relationships.
type SocialService struct {
	repo domain.SocialRepository
}

func NewSocialService(repo domain.SocialRepository) *SocialService {
	return &SocialService{repo: repo}
}

func (s *SocialService) CreateUser(ctx context.Context, value domain.SocialUser) (domain.SocialUser, error) {
	if value.Name == "" {
		return domain.SocialUser{}, domain.Invalid("name", "is required")
	}
	if value.ID == "" {
		value.ID = uuid.NewString()
	}
	return s.repo.CreateUser(ctx, value)
}

func (s *SocialService) ListUsers(ctx context.Context) ([]domain.SocialUser, error) {
	return s.repo.ListUsers(ctx)
}

func (s *SocialService) GetUser(ctx context.Context, id string) (domain.SocialUser, error) {
	return s.repo.GetUser(ctx, id)
}

// UpdateUser applies a partial update. At least one field must be set.
func (s *SocialService) UpdateUser(ctx context.Context, id string, update domain.SocialUserUpdate) (domain.SocialUser, error) {
	if update.Name == nil && update.Email == nil && update.Age == nil && update.Gender == nil {
		return domain.SocialUser{}, domain.Invalid("body", "no fields to update")
	}
	return s.repo.UpdateUser(ctx, id, update)
}

func (s *SocialService) DeleteUser(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}

func (s *SocialService) CreatePost(ctx context.Context, post domain.Post) (domain.Post, error) {
	if post.Content == "" {
		return domain.Post{}, domain.Invalid("content", "is required")
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	return s.repo.CreatePost(ctx, post)
}

// Follow records a follow edge. Missing endpoints are ignored and repeated
// calls stack additional edges.
func (s *SocialService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == "" {
		return domain.Invalid("follower_id", "is required")
	}
	if followeeID == "" {
		return domain.Invalid("followee_id", "is required")
	}
	return s.repo.Follow(ctx, followerID, followeeID)
}

// Like records a like edge with the same loose semantics as Follow.
func (s *SocialService) Like(ctx context.Context, userID, postID string) error {
	if userID == "" {
		return domain.Invalid("user_id", "is required")
	}
	if postID == "" {
		return domain.Invalid("post_id", "is required")
	}
	return s.repo.Like(ctx, userID, postID)
}

func (s *SocialService) Followers(ctx context.Context, userID string) ([]domain.SocialUser, error) {
	users, err := s.repo.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrNotFound
	}
	return users, nil
}

func (s *SocialService) Following(ctx context.Context, userID string) ([]domain.SocialUser, error) {
	users, err := s.repo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrNotFound
	}
	return users, nil
}

// Likes lists the users who liked a post.
func (s *SocialService) Likes(ctx context.Context, postID string) ([]domain.SocialUser, error) {
	users, err := s.repo.Likes(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrNotFound
	}
	return users, nil
}
