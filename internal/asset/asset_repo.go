package asset

import (
	"context"
	"database/sql"
	"strings"

	"go-asset/internal/domain"
	"go-asset/internal/shared/database"
	"go-asset/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=asset_repo.go -destination=mock/asset_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Asset) error
	FindByID(ctx context.Context, id string) (*Asset, error)
	FindAll(ctx context.Context, filter AssetFilter) ([]Asset, int64, error)
	Update(ctx context.Context, a *Asset) error
	Delete(ctx context.Context, id string) error
	HasOutstandingScrapRequest(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: database.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, a *Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("assets").
		Select(`assets.*,
			asset_types.asset_type_name, asset_types.depreciation_percentage,
			departments.name AS department_name,
			branches.name AS branch_name,
			users.full_name AS user_name`).
		Joins("JOIN asset_types ON asset_types.id = assets.asset_type_id").
		Joins("LEFT JOIN departments ON departments.id = assets.department_id").
		Joins("LEFT JOIN branches ON branches.id = assets.branch_id").
		Joins("LEFT JOIN users ON users.id = assets.user_id")
}

func (r *repository) FindByID(ctx context.Context, id string) (*Asset, error) {
	var a Asset
	if err := r.joined(ctx).Where("assets.id = ?", id).Take(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func applyFilter(q *gorm.DB, filter AssetFilter) *gorm.DB {
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("(assets.asset_name ILIKE ? OR assets.serial_number ILIKE ?)", like, like)
	}
	if filter.DepartmentID != "" {
		q = q.Where("assets.department_id = ?", filter.DepartmentID)
	}
	q = q.Scopes(scope.Branch("assets", filter.BranchID))
	if filter.AssetTypeID != "" {
		q = q.Where("assets.asset_type_id = ?", filter.AssetTypeID)
	}
	if filter.Category != "" {
		q = q.Where("assets.asset_category = ?", filter.Category)
	}
	if filter.Status != "" {
		q = q.Where("assets.asset_usage_status = ?", filter.Status)
	}
	return q
}

func (r *repository) FindAll(ctx context.Context, filter AssetFilter) ([]Asset, int64, error) {
	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Table("assets"), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assets []Asset
	err := applyFilter(r.joined(ctx), filter).
		Order("assets.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&assets).Error
	return assets, total, err
}

func (r *repository) Update(ctx context.Context, a *Asset) error {
	return r.db.WithContext(ctx).
		Table("assets").
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"asset_name":         a.AssetName,
			"serial_number":      a.SerialNumber,
			"description":        a.Description,
			"asset_category":     a.AssetCategory,
			"quantity":           a.Quantity,
			"department_id":      a.DepartmentID,
			"branch_id":          a.BranchID,
			"user_id":            a.UserID,
			"asset_usage_status": a.AssetUsageStatus,
			"remarks":            a.Remarks,
			"updated_at":         gorm.Expr("NOW()"),
		}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Asset{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) HasOutstandingScrapRequest(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("scrap_requests").
		Where("asset_id = ? AND status IN ?", id, []string{domain.ScrapPending, domain.ScrapApproved}).
		Count(&count).Error
	return count > 0, err
}
