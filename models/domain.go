package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Domain represents a life-area category used to organize content
// (e.g. "Sleep, Energy & Recovery"). Eleven domains are expected in
// steady state; the model does not hard-enforce that count.
type Domain struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Slug         string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name         string    `gorm:"not null" json:"name"`
	Icon         string    `json:"icon"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Domain model.
func (Domain) TableName() string {
	return "domains"
}

// BeforeCreate assigns a UUID primary key if none was provided.
func (d *Domain) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
