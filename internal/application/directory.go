package application

import (
	"context"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

const (
	defaultDirectoryLimit = 10
	maxDirectoryLimit     = 100
)

// DirectoryService is the relational variant of user management.
type DirectoryService struct {
	repo domain.DirectoryRepository
}

func NewDirectoryService(repo domain.DirectoryRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

func (s *DirectoryService) CreateUser(ctx context.Context, value domain.DirectoryUser) (domain.DirectoryUser, error) {
	if value.Name == "" {
		return domain.DirectoryUser{}, domain.Invalid("name", "is required")
	}
	if value.Email == "" {
		return domain.DirectoryUser{}, domain.Invalid("email", "is required")
	}
	return s.repo.CreateUser(ctx, value)
}

func (s *DirectoryService) ListUsers(ctx context.Context, skip, limit int) ([]domain.DirectoryUser, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultDirectoryLimit
	}
	if limit > maxDirectoryLimit {
		limit = maxDirectoryLimit
	}
	return s.repo.ListUsers(ctx, skip, limit)
}

func (s *DirectoryService) GetUser(ctx context.Context, id uint) (domain.DirectoryUser, error) {
	return s.repo.GetUser(ctx, id)
}

// UpdateUser applies a partial update. An empty update returns the stored
// row unchanged.
func (s *DirectoryService) UpdateUser(ctx context.Context, id uint, update domain.DirectoryUserUpdate) (domain.DirectoryUser, error) {
	return s.repo.UpdateUser(ctx, id, update)
}

func (s *DirectoryService) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.DeleteUser(ctx, id)
}
