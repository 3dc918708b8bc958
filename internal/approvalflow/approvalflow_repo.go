package approvalflow

import (
	"context"
	"database/sql"
	"errors"

	"go-asset/internal/domain"
	"go-asset/internal/shared/database"

	"gorm.io/gorm"
)

const levelColumns = `approval_levels.*, asset_types.asset_type_name, roles.name AS role_name`

//go:generate mockgen -source=approvalflow_repo.go -destination=mock/approvalflow_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *ApprovalLevel) error
	Update(ctx context.Context, l *ApprovalLevel) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*ApprovalLevel, error)
	// FindByNumber returns nil when the asset type has no level with that number.
	FindByNumber(ctx context.Context, assetTypeID string, levelNumber int) (*ApprovalLevel, error)
	ListByAssetType(ctx context.Context, assetTypeID string) ([]ApprovalLevel, error)
	ListAll(ctx context.Context) ([]ApprovalLevel, error)
	AssetTypeExists(ctx context.Context, assetTypeID string) (bool, error)
	IsCurrentLevelOfPending(ctx context.Context, levelID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *ApprovalLevel) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) Update(ctx context.Context, l *ApprovalLevel) error {
	return r.db.WithContext(ctx).
		Model(&ApprovalLevel{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"level_number": l.LevelNumber,
			"role_id":      l.RoleID,
			"description":  l.Description,
			"updated_at":   gorm.Expr("NOW()"),
		}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ApprovalLevel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&ApprovalLevel{}).
		Select(levelColumns).
		Joins("JOIN asset_types ON asset_types.id = approval_levels.asset_type_id").
		Joins("JOIN roles ON roles.id = approval_levels.role_id")
}

func (r *repository) FindByID(ctx context.Context, id string) (*ApprovalLevel, error) {
	var l ApprovalLevel
	if err := r.joined(ctx).Where("approval_levels.id = ?", id).Take(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByNumber(ctx context.Context, assetTypeID string, levelNumber int) (*ApprovalLevel, error) {
	var l ApprovalLevel
	err := r.db.WithContext(ctx).
		Where("asset_type_id = ? AND level_number = ?", assetTypeID, levelNumber).
		Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) ListByAssetType(ctx context.Context, assetTypeID string) ([]ApprovalLevel, error) {
	var levels []ApprovalLevel
	err := r.joined(ctx).
		Where("approval_levels.asset_type_id = ?", assetTypeID).
		Order("approval_levels.level_number ASC").
		Find(&levels).Error
	return levels, err
}

func (r *repository) ListAll(ctx context.Context) ([]ApprovalLevel, error) {
	var levels []ApprovalLevel
	err := r.joined(ctx).
		Order("asset_types.asset_type_name ASC").
		Order("approval_levels.level_number ASC").
		Find(&levels).Error
	return levels, err
}

func (r *repository) AssetTypeExists(ctx context.Context, assetTypeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("asset_types").
		Where("id = ?", assetTypeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) IsCurrentLevelOfPending(ctx context.Context, levelID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("scrap_requests").
		Where("current_approval_level_id = ? AND status = ?", levelID, domain.ScrapPending).
		Count(&count).Error
	return count > 0, err
}
