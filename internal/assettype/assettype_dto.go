package assettype

import "github.com/shopspring/decimal"

type AssetTypeRequest struct {
	AssetTypeName          string           `json:"assetTypeName" binding:"required,max=150"`
	Description            string           `json:"description"`
	DepreciationPercentage *decimal.Decimal `json:"depreciationPercentage" binding:"required"`
}

type AssetTypeResponse struct {
	ID                     string          `json:"id"`
	AssetTypeName          string          `json:"assetTypeName"`
	Description            string          `json:"description"`
	DepreciationPercentage decimal.Decimal `json:"depreciationPercentage"`
	CreatedAt              string          `json:"createdAt"`
	UpdatedAt              string          `json:"updatedAt"`
}
