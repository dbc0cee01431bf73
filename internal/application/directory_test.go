package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

type fakeDirectoryRepo struct {
	lastSkip  int
	lastLimit int
	users     map[uint]domain.DirectoryUser
}

func (f *fakeDirectoryRepo) CreateUser(_ context.Context, value domain.DirectoryUser) (domain.DirectoryUser, error) {
	value.ID = uint(len(f.users) + 1)
	f.users[value.ID] = value
	return value, nil
}

func (f *fakeDirectoryRepo) ListUsers(_ context.Context, skip, limit int) ([]domain.DirectoryUser, error) {
	f.lastSkip, f.lastLimit = skip, limit
	return nil, nil
}

func (f *fakeDirectoryRepo) GetUser(_ context.Context, id uint) (domain.DirectoryUser, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.DirectoryUser{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeDirectoryRepo) UpdateUser(_ context.Context, id uint, update domain.DirectoryUserUpdate) (domain.DirectoryUser, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.DirectoryUser{}, domain.ErrNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	f.users[id] = u
	return u, nil
}

func (f *fakeDirectoryRepo) DeleteUser(_ context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func TestDirectoryCreateValidation(t *testing.T) {
	repo := &fakeDirectoryRepo{users: map[uint]domain.DirectoryUser{}}
	svc := NewDirectoryService(repo)

	_, err := svc.CreateUser(context.Background(), domain.DirectoryUser{Email: "a@b.c"})
	assert.True(t, domain.IsValidation(err))
	_, err = svc.CreateUser(context.Background(), domain.DirectoryUser{Name: "ana"})
	assert.True(t, domain.IsValidation(err))

	created, err := svc.CreateUser(context.Background(), domain.DirectoryUser{Name: "ana", Email: "a@b.c"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestDirectoryListClampsPaging(t *testing.T) {
	repo := &fakeDirectoryRepo{users: map[uint]domain.DirectoryUser{}}
	svc := NewDirectoryService(repo)

	_, err := svc.ListUsers(context.Background(), -5, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.lastSkip)
	assert.Equal(t, defaultDirectoryLimit, repo.lastLimit)

	_, err = svc.ListUsers(context.Background(), 3, 1000)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.lastSkip)
	assert.Equal(t, maxDirectoryLimit, repo.lastLimit)
}

func TestDirectoryEmptyUpdateKeepsRow(t *testing.T) {
	repo := &fakeDirectoryRepo{users: map[uint]domain.DirectoryUser{
		7: {ID: 7, Name: "ana", Email: "a@b.c"},
	}}
	svc := NewDirectoryService(repo)

	got, err := svc.UpdateUser(context.Background(), 7, domain.DirectoryUserUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Name)

	_, err = svc.UpdateUser(context.Background(), 8, domain.DirectoryUserUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
