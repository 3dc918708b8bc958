package scraprequest

import (
	"context"
	"database/sql"
	"time"

	"go-asset/internal/approvalflow"
	"go-asset/internal/domain"
	"go-asset/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const requestColumns = `scrap_requests.*,
	assets.asset_name, assets.asset_code, assets.asset_type_id,
	users.full_name AS requested_by_name,
	approval_levels.level_number AS current_level_number,
	approval_levels.role_id AS current_role_id,
	roles.name AS current_role_name`

//go:generate mockgen -source=scraprequest_repo.go -destination=mock/scraprequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// FindAsset locks the asset row so concurrent submissions serialize.
	FindAsset(ctx context.Context, assetID string) (*AssetRef, error)
	HasOutstanding(ctx context.Context, assetID string) (bool, error)
	ListLevels(ctx context.Context, assetTypeID string) ([]approvalflow.ApprovalLevel, error)
	Create(ctx context.Context, sr *ScrapRequest) error
	FindForUpdate(ctx context.Context, id string) (*ScrapRequest, error)
	CreateApproval(ctx context.Context, a *Approval) error
	// Transition applies a decision only while the request is still pending at
	// expectedLevelID and reports the rows it changed.
	Transition(ctx context.Context, id string, expectedLevelID uuid.UUID, status string, levelID uuid.UUID) (int64, error)
	MarkAssetScrapped(ctx context.Context, assetID string, at time.Time) error
	FindByID(ctx context.Context, id string) (*ScrapRequest, error)
	FindAll(ctx context.Context, filter ScrapRequestFilter) ([]ScrapRequest, int64, error)
	ListApprovals(ctx context.Context, scrapRequestID string) ([]Approval, error)
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

func (r *repository) FindAsset(ctx context.Context, assetID string) (*AssetRef, error) {
	var a AssetRef
	err := r.db.WithContext(ctx).
		Table("assets").
		Select("id, asset_name, asset_type_id, asset_usage_status").
		Where("id = ?", assetID).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) HasOutstanding(ctx context.Context, assetID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ScrapRequest{}).
		Where("asset_id = ? AND status IN ?", assetID, []string{domain.ScrapPending, domain.ScrapApproved}).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListLevels(ctx context.Context, assetTypeID string) ([]approvalflow.ApprovalLevel, error) {
	var levels []approvalflow.ApprovalLevel
	err := r.db.WithContext(ctx).
		Where("asset_type_id = ?", assetTypeID).
		Order("level_number ASC").
		Find(&levels).Error
	return levels, err
}

func (r *repository) Create(ctx context.Context, sr *ScrapRequest) error {
	return r.db.WithContext(ctx).Create(sr).Error
}

func (r *repository) FindForUpdate(ctx context.Context, id string) (*ScrapRequest, error) {
	var sr ScrapRequest
	err := r.db.WithContext(ctx).
		Model(&ScrapRequest{}).
		Select("scrap_requests.*, assets.asset_name, assets.asset_code, assets.asset_type_id").
		Joins("JOIN assets ON assets.id = scrap_requests.asset_id").
		Where("scrap_requests.id = ?", id).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "scrap_requests"}}).
		Take(&sr).Error
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *repository) CreateApproval(ctx context.Context, a *Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Transition(ctx context.Context, id string, expectedLevelID uuid.UUID, status string, levelID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&ScrapRequest{}).
		Where("id = ? AND status = ? AND current_approval_level_id = ?", id, domain.ScrapPending, expectedLevelID).
		Updates(map[string]any{
			"status":                    status,
			"current_approval_level_id": levelID,
			"updated_at":                time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) MarkAssetScrapped(ctx context.Context, assetID string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Table("assets").
		Where("id = ?", assetID).
		Updates(map[string]any{
			"asset_usage_status": domain.AssetScrapped,
			"scrapped_at_date":   at,
			"updated_at":         at,
		})
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
		Model(&ScrapRequest{}).
		Joins("JOIN assets ON assets.id = scrap_requests.asset_id").
		Joins("JOIN users ON users.id = scrap_requests.requested_by_id").
		Joins("LEFT JOIN approval_levels ON approval_levels.id = scrap_requests.current_approval_level_id").
		Joins("LEFT JOIN roles ON roles.id = approval_levels.role_id")
}

func (r *repository) FindByID(ctx context.Context, id string) (*ScrapRequest, error) {
	var sr ScrapRequest
	err := r.joined(ctx).
		Select(requestColumns).
		Where("scrap_requests.id = ?", id).
		Take(&sr).Error
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *repository) applyFilter(q *gorm.DB, filter ScrapRequestFilter) *gorm.DB {
	if filter.Status != "" {
		q = q.Where("scrap_requests.status = ?", filter.Status)
	}
	if filter.AssetID != "" {
		q = q.Where("scrap_requests.asset_id = ?", filter.AssetID)
	}
	if filter.AwaitingRoleID != "" {
		q = q.Where("scrap_requests.status = ? AND approval_levels.role_id = ?", domain.ScrapPending, filter.AwaitingRoleID)
	}
	return q
}

func (r *repository) FindAll(ctx context.Context, filter ScrapRequestFilter) ([]ScrapRequest, int64, error) {
	var total int64
	if err := r.applyFilter(r.joined(ctx), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ScrapRequest
	err := r.applyFilter(r.joined(ctx), filter).
		Select(requestColumns).
		Order("scrap_requests.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) ListApprovals(ctx context.Context, scrapRequestID string) ([]Approval, error) {
	var rows []Approval
	err := r.db.WithContext(ctx).
		Model(&Approval{}).
		Select("approvals.*, users.full_name AS approver_name, approval_levels.level_number").
		Joins("JOIN users ON users.id = approvals.approver_id").
		Joins("JOIN approval_levels ON approval_levels.id = approvals.approval_level_id").
		Where("approvals.scrap_request_id = ?", scrapRequestID).
		Order("approvals.created_at ASC").
		Find(&rows).Error
	return rows, err
}
