package depreciation

import "github.com/shopspring/decimal"

type CalculationResult struct {
	AssetID                string          `json:"assetId"`
	Skipped                bool            `json:"skipped"`
	RecordsWritten         int             `json:"recordsWritten"`
	WDV                    decimal.Decimal `json:"wdv"`
	CumulativeDepreciation decimal.Decimal `json:"cumulativeDepreciation"`
	EvaluatedAt            string          `json:"evaluatedAt"`
}

type BatchFailure struct {
	AssetID string `json:"assetId"`
	Error   string `json:"error"`
}

type BatchResult struct {
	Success       bool           `json:"success"`
	AssetsUpdated int            `json:"assetsUpdated"`
	AssetsSkipped int            `json:"assetsSkipped"`
	AssetsFailed  int            `json:"assetsFailed"`
	Failures      []BatchFailure `json:"failures"`
}

type DepreciationResponse struct {
	ID                     string          `json:"id"`
	AssetID                string          `json:"assetId"`
	Year                   int             `json:"year"`
	OpeningBalance         decimal.Decimal `json:"openingBalance"`
	Addition               decimal.Decimal `json:"addition"`
	Depreciation           decimal.Decimal `json:"depreciation"`
	WDV                    decimal.Decimal `json:"wdv"`
	CumulativeDepreciation decimal.Decimal `json:"cumulativeDepreciation"`
	PeriodStart            string          `json:"periodStart"`
	PeriodEnd              string          `json:"periodEnd"`
	CalculatedAt           string          `json:"calculatedAt"`
}
