package asset

import "github.com/shopspring/decimal"

type CreateAssetRequest struct {
	AssetName      string           `json:"assetName" binding:"required,max=200"`
	SerialNumber   string           `json:"serialNumber" binding:"max=100"`
	Description    string           `json:"description"`
	Category       string           `json:"assetCategory" binding:"omitempty,oneof=IT NON_IT"`
	Quantity       int              `json:"quantity" binding:"omitempty,min=1"`
	AssetTypeID    string           `json:"assetTypeId" binding:"required,uuid"`
	DepartmentID   string           `json:"departmentId" binding:"required,uuid"`
	BranchID       string           `json:"branchId" binding:"required,uuid"`
	UserID         *string          `json:"assignedUserId" binding:"omitempty,uuid"`
	BillDate       string           `json:"billDate" binding:"required"`
	OpeningBalance *decimal.Decimal `json:"openingBalance" binding:"required"`
	Addition       *decimal.Decimal `json:"addition"`
	Status         string           `json:"assetUsageStatus"`
	Remarks        string           `json:"remarks"`
}

// UpdateAssetRequest leaves bill date, balances and asset type untouched; they
// feed depreciation history that is already on record.
type UpdateAssetRequest struct {
	AssetName    string  `json:"assetName" binding:"required,max=200"`
	SerialNumber string  `json:"serialNumber" binding:"max=100"`
	Description  string  `json:"description"`
	Category     string  `json:"assetCategory" binding:"omitempty,oneof=IT NON_IT"`
	Quantity     int     `json:"quantity" binding:"omitempty,min=1"`
	DepartmentID string  `json:"departmentId" binding:"required,uuid"`
	BranchID     string  `json:"branchId" binding:"required,uuid"`
	UserID       *string `json:"assignedUserId" binding:"omitempty,uuid"`
	Status       string  `json:"assetUsageStatus" binding:"required"`
	Remarks      string  `json:"remarks"`
}

type AssetResponse struct {
	ID                     string          `json:"id"`
	AssetCode              string          `json:"assetCode"`
	AssetName              string          `json:"assetName"`
	SerialNumber           string          `json:"serialNumber"`
	Description            string          `json:"description"`
	AssetCategory          string          `json:"assetCategory"`
	Quantity               int             `json:"quantity"`
	AssetTypeID            string          `json:"assetTypeId"`
	AssetTypeName          string          `json:"assetTypeName,omitempty"`
	DepreciationPercentage decimal.Decimal `json:"depreciationPercentage"`
	DepartmentID           string          `json:"departmentId"`
	DepartmentName         string          `json:"departmentName,omitempty"`
	BranchID               string          `json:"branchId"`
	BranchName             string          `json:"branchName,omitempty"`
	UserID                 *string         `json:"assignedUserId"`
	UserName               string          `json:"assignedUserName,omitempty"`
	BillDate               string          `json:"billDate"`
	OpeningBalance         decimal.Decimal `json:"openingBalance"`
	Addition               decimal.Decimal `json:"addition"`
	WDV                    decimal.Decimal `json:"wdv"`
	CumulativeDepreciation decimal.Decimal `json:"cumulativeDepreciation"`
	LastDepreciationDate   *string         `json:"lastDepreciationDate"`
	AssetUsageStatus       string          `json:"assetUsageStatus"`
	ScrappedAtDate         *string         `json:"scrappedAtDate"`
	Remarks                string          `json:"remarks"`
	CreatedAt              string          `json:"createdAt"`
	UpdatedAt              string          `json:"updatedAt"`
}
