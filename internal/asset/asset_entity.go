package asset

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Asset struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AssetCode              string          `gorm:"size:30;not null"`
	AssetName              string          `gorm:"size:200;not null"`
	SerialNumber           string          `gorm:"size:100"`
	Description            string          `gorm:"type:text"`
	AssetCategory          string          `gorm:"size:10;not null;default:IT"`
	Quantity               int             `gorm:"not null;default:1"`
	AssetTypeID            uuid.UUID       `gorm:"type:uuid;not null"`
	DepartmentID           uuid.UUID       `gorm:"type:uuid;not null"`
	BranchID               uuid.UUID       `gorm:"type:uuid;not null"`
	UserID                 *uuid.UUID      `gorm:"type:uuid"`
	BillDate               time.Time       `gorm:"type:date;not null"`
	OpeningBalance         decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Addition               decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	WDV                    decimal.Decimal `gorm:"column:wdv;type:numeric(18,2);not null"`
	CumulativeDepreciation decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	LastDepreciationDate   *time.Time
	AssetUsageStatus       string `gorm:"size:20;not null"`
	ScrappedAtDate         *time.Time
	Remarks                string    `gorm:"type:text"`
	CreatedAt              time.Time `gorm:"autoCreateTime"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`

	AssetTypeName          string          `gorm:"->;-:migration"`
	DepreciationPercentage decimal.Decimal `gorm:"->;-:migration"`
	DepartmentName         string          `gorm:"->;-:migration"`
	BranchName             string          `gorm:"->;-:migration"`
	UserName               string          `gorm:"->;-:migration"`
}

func (Asset) TableName() string {
	return "assets"
}

type AssetFilter struct {
	Search       string
	DepartmentID string
	BranchID     string
	AssetTypeID  string
	Category     string
	Status       string
	Page         int
	Limit        int
}
