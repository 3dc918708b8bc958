package user

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]User, error)
	Update(ctx context.Context, u *User) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Select("users.*, roles.name AS role_name, departments.name AS department_name").
		Joins("JOIN roles ON roles.id = users.role_id").
		Joins("LEFT JOIN departments ON departments.id = users.department_id")
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	if err := r.joined(ctx).Where("users.id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAll(ctx context.Context, filter UserFilter) ([]User, error) {
	q := r.joined(ctx)

	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(users.full_name) LIKE ? OR LOWER(users.email) LIKE ?)", like, like)
	}
	if filter.RoleID != "" {
		q = q.Where("users.role_id = ?", filter.RoleID)
	}
	if filter.DepartmentID != "" {
		q = q.Where("users.department_id = ?", filter.DepartmentID)
	}
	if filter.IsActive != nil {
		q = q.Where("users.is_active = ?", *filter.IsActive)
	}

	var users []User
	err := q.Order("users.full_name ASC").Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"full_name":     u.FullName,
			"password":      u.Password,
			"role_id":       u.RoleID,
			"department_id": u.DepartmentID,
			"branch_id":     u.BranchID,
			"is_active":     u.IsActive,
		}).Error
}
