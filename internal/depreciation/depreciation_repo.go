package depreciation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-asset/internal/domain"
	"go-asset/internal/shared/database"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=depreciation_repo.go -destination=mock/depreciation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// FindSubject locks the asset row for the rest of the transaction.
	FindSubject(ctx context.Context, assetID string) (*Subject, error)
	// LatestClosedRecord returns nil when the asset has no fully elapsed year on record.
	LatestClosedRecord(ctx context.Context, assetID string) (*AssetDepreciation, error)
	UpsertRecords(ctx context.Context, records []AssetDepreciation) error
	UpdateAssetBook(ctx context.Context, assetID string, wdv, cumulative decimal.Decimal, evaluatedAt time.Time) error
	ListDepreciableAssetIDs(ctx context.Context) ([]string, error)
	ListByAsset(ctx context.Context, assetID string) ([]AssetDepreciation, error)
	AssetExists(ctx context.Context, assetID string) (bool, error)
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

func (r *repository) FindSubject(ctx context.Context, assetID string) (*Subject, error) {
	var s Subject
	err := r.db.WithContext(ctx).
		Table("assets").
		Select(`assets.id, assets.bill_date, assets.opening_balance, assets.addition, assets.wdv,
			assets.cumulative_depreciation, assets.asset_usage_status, assets.scrapped_at_date,
			assets.last_depreciation_date, asset_types.depreciation_percentage`).
		Joins("JOIN asset_types ON asset_types.id = assets.asset_type_id").
		Where("assets.id = ?", assetID).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "assets"}}).
		Take(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) LatestClosedRecord(ctx context.Context, assetID string) (*AssetDepreciation, error) {
	var rec AssetDepreciation
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Where("period_end >= make_date(year + 1, 1, 1)").
		Order("year DESC").
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpsertRecords refreshes rows of years that were still open on the previous run.
func (r *repository) UpsertRecords(ctx context.Context, records []AssetDepreciation) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "asset_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"opening_balance", "addition", "depreciation", "wdv",
				"cumulative_depreciation", "period_start", "period_end", "calculated_at",
			}),
		}).
		Create(&records).Error
}

func (r *repository) UpdateAssetBook(ctx context.Context, assetID string, wdv, cumulative decimal.Decimal, evaluatedAt time.Time) error {
	return r.db.WithContext(ctx).
		Table("assets").
		Where("id = ?", assetID).
		Updates(map[string]any{
			"wdv":                     wdv,
			"cumulative_depreciation": cumulative,
			"last_depreciation_date":  evaluatedAt,
			"updated_at":              time.Now().UTC(),
		}).Error
}

func (r *repository) ListDepreciableAssetIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("assets").
		Where("asset_usage_status <> ?", domain.AssetScrapped).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) ListByAsset(ctx context.Context, assetID string) ([]AssetDepreciation, error) {
	var rows []AssetDepreciation
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("year ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) AssetExists(ctx context.Context, assetID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("assets").
		Where("id = ?", assetID).
		Count(&count).Error
	return count > 0, err
}
