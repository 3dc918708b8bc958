package approvalflow

type CreateLevelRequest struct {
	AssetTypeID string  `json:"assetTypeId" binding:"required,uuid"`
	LevelNumber int     `json:"levelNumber" binding:"required,min=1"`
	RoleID      string  `json:"roleId" binding:"required,uuid"`
	Description *string `json:"description"`
}

type UpdateLevelRequest struct {
	LevelNumber int     `json:"levelNumber" binding:"required,min=1"`
	RoleID      string  `json:"roleId" binding:"required,uuid"`
	Description *string `json:"description"`
}

type LevelResponse struct {
	ID              string  `json:"id"`
	AssetTypeID     string  `json:"assetTypeId"`
	AssetTypeName   string  `json:"assetTypeName,omitempty"`
	LevelNumber     int     `json:"levelNumber"`
	RoleID          string  `json:"roleId"`
	RoleName        string  `json:"roleName,omitempty"`
	Description     *string `json:"description,omitempty"`
	NextLevelID     *string `json:"nextLevelId"`
	PreviousLevelID *string `json:"previousLevelId"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}
