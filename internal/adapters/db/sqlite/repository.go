// Package sqlite stores the directory variant of user management in a
// local SQLite database.
package sqlite

import (
	"context"
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

type DirectoryRepository struct {
	db *gorm.DB
}

func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{})
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) CreateUser(ctx context.Context, value domain.DirectoryUser) (domain.DirectoryUser, error) {
	m := DirectoryUserModel{Name: value.Name, Email: value.Email, Age: value.Age, Gender: value.Gender}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.DirectoryUser{}, domain.WrapStore("create directory user", err)
	}
	return directoryUserFrom(m), nil
}

func (r *DirectoryRepository) ListUsers(ctx context.Context, skip, limit int) ([]domain.DirectoryUser, error) {
	rows := make([]DirectoryUserModel, 0)
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, domain.WrapStore("list directory users", err)
	}
	result := make([]domain.DirectoryUser, 0, len(rows))
	for _, m := range rows {
		result = append(result, directoryUserFrom(m))
	}
	return result, nil
}

func (r *DirectoryRepository) GetUser(ctx context.Context, id uint) (domain.DirectoryUser, error) {
	var m DirectoryUserModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DirectoryUser{}, domain.ErrNotFound
		}
		return domain.DirectoryUser{}, domain.WrapStore("get directory user", err)
	}
	return directoryUserFrom(m), nil
}

// UpdateUser writes only the provided fields; an empty update just reloads
// the row.
func (r *DirectoryRepository) UpdateUser(ctx context.Context, id uint, update domain.DirectoryUserUpdate) (domain.DirectoryUser, error) {
	changes := map[string]any{}
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.Email != nil {
		changes["email"] = *update.Email
	}
	if update.Age != nil {
		changes["age"] = *update.Age
	}
	if update.Gender != nil {
		changes["gender"] = *update.Gender
	}

	if len(changes) > 0 {
		result := r.db.WithContext(ctx).Model(&DirectoryUserModel{}).Where("id = ?", id).Updates(changes)
		if result.Error != nil {
			return domain.DirectoryUser{}, domain.WrapStore("update directory user", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.DirectoryUser{}, domain.ErrNotFound
		}
	}
	return r.GetUser(ctx, id)
}

func (r *DirectoryRepository) DeleteUser(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&DirectoryUserModel{}, id)
	if result.Error != nil {
		return domain.WrapStore("delete directory user", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func directoryUserFrom(m DirectoryUserModel) domain.DirectoryUser {
	return domain.DirectoryUser{
		ID:     m.ID,
		Name:   m.Name,
		Email:  m.Email,
		Age:    m.Age,
		Gender: m.Gender,
	}
}
