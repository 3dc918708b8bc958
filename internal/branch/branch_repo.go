package branch

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=branch_repo.go -destination=mock/branch_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, b *Branch) error
	FindAll(ctx context.Context, search string) ([]Branch, error)
	FindByID(ctx context.Context, id string) (*Branch, error)
	Update(ctx context.Context, b *Branch) error
	Delete(ctx context.Context, id string) error
	// CountReferences counts live assets and users attached to the branch.
	CountReferences(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindAll(ctx context.Context, search string) ([]Branch, error) {
	var branches []Branch
	q := r.db.WithContext(ctx).Order("name ASC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR location ILIKE ?", like, like)
	}
	err := q.Find(&branches).Error
	return branches, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Branch, error) {
	var b Branch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Update(ctx context.Context, b *Branch) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Branch{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountReferences(ctx context.Context, id string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM assets WHERE branch_id = ?) +
			(SELECT COUNT(*) FROM users WHERE branch_id = ? AND deleted_at IS NULL)
	`, id, id).Scan(&total).Error
	return total, err
}
