package activity

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=activity_repo.go -destination=mock/activity_repo_mock.go -package=mock
type Repository interface {
	// Record reports false when the event was already projected.
	Record(ctx context.Context, a *Activity) (bool, error)
	FindAll(ctx context.Context, filter ActivityFilter) ([]Activity, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Record(ctx context.Context, a *Activity) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(a)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) FindAll(ctx context.Context, filter ActivityFilter) ([]Activity, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&Activity{})
		if filter.AssetID != "" {
			q = q.Where("activities.asset_id = ?", filter.AssetID)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Activity
	err := base().
		Select("activities.*, users.full_name AS user_name, assets.asset_name").
		Joins("LEFT JOIN users ON users.id = activities.user_id").
		Joins("LEFT JOIN assets ON assets.id = activities.asset_id").
		Order("activities.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&rows).Error
	return rows, total, err
}
