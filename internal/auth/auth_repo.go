package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetRoleIDByName(ctx context.Context, name string) (uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) withRole(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Select("users.*, roles.name AS role_name").
		Joins("JOIN roles ON roles.id = users.role_id")
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.withRole(ctx).
		Where("LOWER(users.email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	if err := r.withRole(ctx).Where("users.id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetRoleIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	var id string
	err := r.db.WithContext(ctx).
		Table("roles").
		Select("id").
		Where("name = ?", name).
		Take(&id).Error
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(id)
}
