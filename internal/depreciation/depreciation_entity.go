package depreciation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AssetDepreciation struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID                uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_asset_depreciation_year"`
	Year                   int             `gorm:"not null;uniqueIndex:uq_asset_depreciation_year"`
	OpeningBalance         decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Addition               decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Depreciation           decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	WDV                    decimal.Decimal `gorm:"column:wdv;type:numeric(18,2);not null"`
	CumulativeDepreciation decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	PeriodStart            time.Time       `gorm:"type:date;not null"`
	PeriodEnd              time.Time       `gorm:"type:date;not null"`
	CalculatedAt           time.Time       `gorm:"not null"`
}

func (AssetDepreciation) TableName() string {
	return "asset_depreciations"
}

func (a AssetDepreciation) toYearRecord() YearRecord {
	return YearRecord{
		Year:                   a.Year,
		OpeningBalance:         a.OpeningBalance,
		Addition:               a.Addition,
		Depreciation:           a.Depreciation,
		WDV:                    a.WDV,
		CumulativeDepreciation: a.CumulativeDepreciation,
		PeriodStart:            a.PeriodStart,
		PeriodEnd:              a.PeriodEnd,
	}
}

// Subject is the engine's view of an asset row joined with its type's rate.
type Subject struct {
	ID                     uuid.UUID
	BillDate               time.Time
	OpeningBalance         decimal.Decimal
	Addition               decimal.Decimal
	WDV                    decimal.Decimal `gorm:"column:wdv"`
	CumulativeDepreciation decimal.Decimal
	DepreciationPercentage decimal.Decimal
	AssetUsageStatus       string
	ScrappedAtDate         *time.Time
	LastDepreciationDate   *time.Time
}

func (s Subject) basis() Basis {
	return Basis{
		BillDate:       s.BillDate,
		OpeningBalance: s.OpeningBalance,
		Addition:       s.Addition,
		Rate:           s.DepreciationPercentage,
	}
}
