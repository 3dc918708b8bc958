package assettype

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assettype_repo.go -destination=mock/assettype_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]AssetType, error)
	FindByID(ctx context.Context, id string) (*AssetType, error)
	// FindByName matches case-insensitively and returns nil when absent.
	FindByName(ctx context.Context, name string) (*AssetType, error)
	Create(ctx context.Context, t *AssetType) error
	Update(ctx context.Context, t *AssetType) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]AssetType, error) {
	var types []AssetType
	err := r.db.WithContext(ctx).Order("asset_type_name ASC").Find(&types).Error
	return types, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*AssetType, error) {
	var t AssetType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*AssetType, error) {
	var t AssetType
	err := r.db.WithContext(ctx).Where("LOWER(asset_type_name) = LOWER(?)", name).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Create(ctx context.Context, t *AssetType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) Update(ctx context.Context, t *AssetType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AssetType{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
