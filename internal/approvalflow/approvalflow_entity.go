package approvalflow

import (
	"time"

	"github.com/google/uuid"
)

type ApprovalLevel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssetTypeID uuid.UUID `gorm:"type:uuid;not null"`
	LevelNumber int       `gorm:"not null"`
	RoleID      uuid.UUID `gorm:"type:uuid;not null"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	AssetTypeName string `gorm:"->;-:migration"`
	RoleName      string `gorm:"->;-:migration"`
}

func (ApprovalLevel) TableName() string {
	return "approval_levels"
}
