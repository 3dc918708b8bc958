package domain

// Asset usage statuses.
const (
	AssetInUse    = "IN_USE"
	AssetIdle     = "IDLE"
	AssetScrapped = "SCRAPPED"
)

// Asset categories.
const (
	AssetCategoryIT    = "IT"
	AssetCategoryNonIT = "NON_IT"
)

// Scrap request and approval statuses.
const (
	ScrapPending  = "PENDING"
	ScrapApproved = "APPROVED"
	ScrapRejected = "REJECTED"
)

// Activity actions recorded in the activity feed.
const (
	ActivityAssetCreated   = "ASSET_CREATED"
	ActivityAssetUpdated   = "ASSET_UPDATED"
	ActivityAssetDeleted   = "ASSET_DELETED"
	ActivityScrapRequested = "SCRAP_REQUESTED"
	ActivityScrapAdvanced  = "SCRAP_ADVANCED"
	ActivityScrapApproved  = "SCRAP_APPROVED"
	ActivityScrapRejected  = "SCRAP_REJECTED"
)

func IsAssetCategory(s string) bool {
	return s == AssetCategoryIT || s == AssetCategoryNonIT
}

func IsAssetStatus(s string) bool {
	switch s {
	case AssetInUse, AssetIdle, AssetScrapped:
		return true
	}
	return false
}
