package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName     string         `gorm:"column:full_name;type:varchar(150);not null"`
	Email        string         `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Password     string         `gorm:"column:password;type:varchar(255);not null"`
	RoleID       uuid.UUID      `gorm:"column:role_id;type:uuid;not null"`
	DepartmentID *uuid.UUID     `gorm:"column:department_id;type:uuid"`
	BranchID     *uuid.UUID     `gorm:"column:branch_id;type:uuid"`
	IsActive     bool           `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`

	RoleName       string `gorm:"->;-:migration"`
	DepartmentName string `gorm:"->;-:migration"`
}

func (User) TableName() string {
	return "users"
}

// UserFilter narrows the admin listing; zero values are ignored.
type UserFilter struct {
	Search       string
	RoleID       string
	DepartmentID string
	IsActive     *bool
}
