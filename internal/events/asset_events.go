package events

import "time"

const (
	AssetLifecycleTopic = "assets.asset.lifecycle.v1"
	ScrapRequestTopic   = "assets.scrap.request.v1"
	DepreciationTopic   = "assets.depreciation.run.v1"
)

const (
	AssetCreated = "asset_created"
	AssetUpdated = "asset_updated"
	AssetDeleted = "asset_deleted"

	ScrapRequested = "scrap_requested"
	ScrapAdvanced  = "scrap_advanced"
	ScrapApproved  = "scrap_approved"
	ScrapRejected  = "scrap_rejected"

	DepreciationBatchCompleted = "depreciation_batch_completed"
)

type AssetEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	AssetID    string    `json:"asset_id"`
	AssetName  string    `json:"asset_name"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ScrapRequestEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	ScrapRequestID string    `json:"scrap_request_id"`
	AssetID        string    `json:"asset_id"`
	ActorID        string    `json:"actor_id"`
	LevelNumber    int       `json:"level_number"`
	Status         string    `json:"status"`
	Comments       string    `json:"comments,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type DepreciationBatchEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	AssetsUpdated int       `json:"assets_updated"`
	AssetsFailed  int       `json:"assets_failed"`
	OccurredAt    time.Time `json:"occurred_at"`
}
