package scraprequest

type SubmitScrapRequest struct {
	AssetID string `json:"assetId" binding:"required,uuid"`
	Reason  string `json:"reason" binding:"required,max=1000"`
}

type DecisionRequest struct {
	Action   string  `json:"action" binding:"required,oneof=APPROVED REJECTED"`
	Comments *string `json:"comments"`
}

type ScrapRequestResponse struct {
	ID                     string  `json:"id"`
	AssetID                string  `json:"assetId"`
	AssetName              string  `json:"assetName,omitempty"`
	AssetCode              string  `json:"assetCode,omitempty"`
	Reason                 string  `json:"reason"`
	Status                 string  `json:"status"`
	RequestedByID          string  `json:"requestedById"`
	RequestedByName        string  `json:"requestedByName,omitempty"`
	CurrentApprovalLevelID *string `json:"currentApprovalLevelId"`
	CurrentLevelNumber     *int    `json:"currentLevelNumber,omitempty"`
	CurrentRoleName        *string `json:"currentRoleName,omitempty"`
	CreatedAt              string  `json:"createdAt"`
	UpdatedAt              string  `json:"updatedAt"`
}

type ApprovalResponse struct {
	ID              string  `json:"id"`
	ApprovalLevelID string  `json:"approvalLevelId"`
	LevelNumber     int     `json:"levelNumber"`
	ApproverID      string  `json:"approverId"`
	ApproverName    string  `json:"approverName,omitempty"`
	Status          string  `json:"status"`
	Comments        *string `json:"comments,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

type ScrapRequestDetailResponse struct {
	ScrapRequestResponse
	Approvals []ApprovalResponse `json:"approvals"`
}
