package activity

import "time"

// RecordInput is one projected domain event.
type RecordInput struct {
	EventID    string
	Action     string
	UserID     string
	AssetID    string
	Details    string
	OccurredAt time.Time
}

type ActivityResponse struct {
	ID        string  `json:"id"`
	Action    string  `json:"action"`
	UserID    *string `json:"userId,omitempty"`
	UserName  *string `json:"userName,omitempty"`
	AssetID   *string `json:"assetId,omitempty"`
	AssetName *string `json:"assetName,omitempty"`
	Details   *string `json:"details,omitempty"`
	CreatedAt string  `json:"createdAt"`
}
