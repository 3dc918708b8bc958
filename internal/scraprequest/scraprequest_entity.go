package scraprequest

import (
	"time"

	"github.com/google/uuid"
)

type ScrapRequest struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AssetID                uuid.UUID  `gorm:"type:uuid;not null"`
	Reason                 string     `gorm:"type:text;not null"`
	Status                 string     `gorm:"size:20;not null"`
	RequestedByID          uuid.UUID  `gorm:"type:uuid;not null"`
	CurrentApprovalLevelID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt              time.Time  `gorm:"autoCreateTime"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime"`

	AssetName          string     `gorm:"->;-:migration"`
	AssetCode          string     `gorm:"->;-:migration"`
	AssetTypeID        *uuid.UUID `gorm:"->;-:migration"`
	RequestedByName    string     `gorm:"->;-:migration"`
	CurrentLevelNumber *int       `gorm:"->;-:migration"`
	CurrentRoleID      *uuid.UUID `gorm:"->;-:migration"`
	CurrentRoleName    *string    `gorm:"->;-:migration"`
}

func (ScrapRequest) TableName() string {
	return "scrap_requests"
}

type Approval struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ScrapRequestID  uuid.UUID `gorm:"type:uuid;not null"`
	ApprovalLevelID uuid.UUID `gorm:"type:uuid;not null"`
	ApproverID      uuid.UUID `gorm:"type:uuid;not null"`
	Status          string    `gorm:"size:20;not null"`
	Comments        *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`

	ApproverName string `gorm:"->;-:migration"`
	LevelNumber  int    `gorm:"->;-:migration"`
}

func (Approval) TableName() string {
	return "approvals"
}

// AssetRef is the slice of an asset a submission needs.
type AssetRef struct {
	ID               uuid.UUID
	AssetName        string
	AssetTypeID      uuid.UUID
	AssetUsageStatus string
}

type ScrapRequestFilter struct {
	Status string
	// AwaitingRoleID keeps pending requests whose current level belongs to the role.
	AwaitingRoleID string
	AssetID        string
	Page           int
	Limit          int
}
