package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Journey is a named, ordered sequence of content item references forming a
// guided multi-day pathway. Order is significant and stored inline in
// ItemRefs rather than via a join table.
type Journey struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Audience    Audience   `gorm:"type:varchar(20);default:'any'" json:"audience"`
	ItemRefs    StringList `gorm:"serializer:json" json:"item_refs"`
	IsPublished bool       `gorm:"default:false" json:"is_published"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Journey model.
func (Journey) TableName() string {
	return "journeys"
}

// BeforeCreate assigns a UUID primary key if none was provided.
func (j *Journey) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
