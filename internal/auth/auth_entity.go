package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName     string     `gorm:"type:varchar(150);not null"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password     string     `gorm:"type:varchar(255);not null"`
	RoleID       uuid.UUID  `gorm:"type:uuid;not null"`
	DepartmentID *uuid.UUID `gorm:"type:uuid"`
	BranchID     *uuid.UUID `gorm:"type:uuid"`
	IsActive     bool       `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	// RoleName is filled by the repository join, never written.
	RoleName string `gorm:"->;-:migration"`
}

func (User) TableName() string {
	return "users"
}
