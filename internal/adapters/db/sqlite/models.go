package sqlite

import "time"

type DirectoryUserModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null;index"`
	Age       int    `gorm:"not null;default:0"`
	Gender    string `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DirectoryUserModel) TableName() string { return "directory_users" }
