package assettype

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AssetType struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AssetTypeName          string          `gorm:"column:asset_type_name;size:150;not null"`
	Description            string          `gorm:"type:text"`
	DepreciationPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	CreatedAt              time.Time       `gorm:"autoCreateTime"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime"`
}

func (AssetType) TableName() string {
	return "asset_types"
}
