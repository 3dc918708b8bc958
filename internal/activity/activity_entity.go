package activity

import (
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventID   uuid.UUID  `gorm:"type:uuid;not null"`
	UserID    *uuid.UUID `gorm:"type:uuid"`
	AssetID   *uuid.UUID `gorm:"type:uuid"`
	Action    string     `gorm:"size:50;not null"`
	Details   *string    `gorm:"type:text"`
	CreatedAt time.Time

	UserName  *string `gorm:"->;-:migration"`
	AssetName *string `gorm:"->;-:migration"`
}

func (Activity) TableName() string {
	return "activities"
}

type ActivityFilter struct {
	AssetID string
	Page    int
	Limit   int
}
