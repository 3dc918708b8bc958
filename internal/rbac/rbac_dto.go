package rbac

import "time"

type RoleRow struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (RoleRow) TableName() string {
	return "roles"
}

type RolePermissionRow struct {
	RoleID   string
	Resource string
	Action   string
}

func (RolePermissionRow) TableName() string {
	return "role_permissions"
}
