package rbac

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	// GetUserRoleID returns "" for unknown or inactive users.
	GetUserRoleID(ctx context.Context, userID string) (string, error)
	GetRolePermissions(ctx context.Context, roleID string) ([]RolePermissionRow, error)

	ListRoles(ctx context.Context) ([]RoleRow, error)
	GetRoleByID(ctx context.Context, id string) (*RoleRow, error)
	GetRoleByName(ctx context.Context, name string) (*RoleRow, error)
	CreateRole(ctx context.Context, role *RoleRow, perms []RolePermissionRow) error
	UpdateRole(ctx context.Context, role *RoleRow, perms []RolePermissionRow) error
	DeleteRole(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetUserRoleID(ctx context.Context, userID string) (string, error) {
	var roleID string
	err := r.db.WithContext(ctx).
		Table("users").
		Select("role_id").
		Where("id = ? AND is_active = TRUE AND deleted_at IS NULL", userID).
		Take(&roleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return roleID, err
}

func (r *repository) GetRolePermissions(ctx context.Context, roleID string) ([]RolePermissionRow, error) {
	var result []RolePermissionRow
	err := r.db.WithContext(ctx).
		Where("role_id = ?", roleID).
		Order("resource, action").
		Find(&result).Error
	return result, err
}

func (r *repository) ListRoles(ctx context.Context) ([]RoleRow, error) {
	var result []RoleRow
	err := r.db.WithContext(ctx).Order("name").Find(&result).Error
	return result, err
}

func (r *repository) GetRoleByID(ctx context.Context, id string) (*RoleRow, error) {
	var result RoleRow
	if err := r.db.WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) GetRoleByName(ctx context.Context, name string) (*RoleRow, error) {
	var result RoleRow
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) CreateRole(ctx context.Context, role *RoleRow, perms []RolePermissionRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		return replacePermissions(tx, role.ID, perms)
	})
}

func (r *repository) UpdateRole(ctx context.Context, role *RoleRow, perms []RolePermissionRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&RoleRow{}).
			Where("id = ?", role.ID).
			Updates(map[string]any{"name": role.Name, "description": role.Description, "updated_at": gorm.Expr("NOW()")}).
			Error; err != nil {
			return err
		}
		return replacePermissions(tx, role.ID, perms)
	})
}

func replacePermissions(tx *gorm.DB, roleID string, perms []RolePermissionRow) error {
	if err := tx.Exec("DELETE FROM role_permissions WHERE role_id = ?", roleID).Error; err != nil {
		return err
	}
	for _, p := range perms {
		if err := tx.Exec(
			"INSERT INTO role_permissions (role_id, resource, action) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
			roleID, p.Resource, p.Action,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) DeleteRole(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&RoleRow{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
