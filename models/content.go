package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pillar defines the four fixed content categories. The pillar determines
// which deep-content fields of ContentDetails apply.
type Pillar string

const (
	PillarUnderstand Pillar = "understand" // Educational, "how it works"
	PillarReflect    Pillar = "reflect"    // Self-discovery questions
	PillarGrow       Pillar = "grow"       // Practical skills
	PillarSupport    Pillar = "support"    // Crisis resources
)

// Valid reports whether the pillar is one of the four fixed values.
func (p Pillar) Valid() bool {
	switch p {
	case PillarUnderstand, PillarReflect, PillarGrow, PillarSupport:
		return true
	}
	return false
}

// Audience defines who a content item is written for.
type Audience string

const (
	AudienceAny           Audience = "any"
	AudienceServiceMember Audience = "service-member"
	AudienceVeteran       Audience = "veteran"
	AudiencePartnerFamily Audience = "partner-family"
)

// Valid reports whether the audience is one of the fixed values.
func (a Audience) Valid() bool {
	switch a {
	case AudienceAny, AudienceServiceMember, AudienceVeteran, AudiencePartnerFamily:
		return true
	}
	return false
}

// NormalizeAudience maps wire-format audience values (which may use the
// underscore variant, e.g. "service_member") onto the canonical hyphenated
// form. An empty value defaults to "any".
func NormalizeAudience(raw string) Audience {
	if raw == "" {
		return AudienceAny
	}
	return Audience(strings.ReplaceAll(raw, "_", "-"))
}

// Sensitivity defines how sensitive a content item's subject matter is.
type Sensitivity string

const (
	SensitivityNormal    Sensitivity = "normal"
	SensitivitySensitive Sensitivity = "sensitive"
	SensitivityUrgent    Sensitivity = "urgent"
)

// Valid reports whether the sensitivity is one of the fixed values.
func (s Sensitivity) Valid() bool {
	switch s {
	case SensitivityNormal, SensitivitySensitive, SensitivityUrgent:
		return true
	}
	return false
}

// Disclosure level bounds. The level is an ordinal (1-3) indicating how much
// contextual detail/sensitivity gating applies before showing content.
const (
	DisclosureLevelMin = 1
	DisclosureLevelMax = 3
)

// StringList is a string slice stored as a JSON column.
type StringList []string

// GrowStep is a single actionable step within the "grow" pillar content.
type GrowStep struct {
	Action string `json:"action"`
	Detail string `json:"detail"`
}

// GrowStepList is a GrowStep slice stored as a JSON column.
type GrowStepList []GrowStep

// ContentItem represents one discrete piece of guidance content (the summary
// record). The long-form body lives in the associated ContentDetails row.
type ContentItem struct {
	ID              string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Slug            string      `gorm:"uniqueIndex;not null" json:"slug"`
	DomainID        string      `gorm:"index;not null;type:varchar(36)" json:"domain_id"`
	Pillar          Pillar      `gorm:"type:varchar(20);not null" json:"pillar"`
	Label           string      `gorm:"not null" json:"label"`
	Microcopy       string      `gorm:"type:text" json:"microcopy"`
	Audience        Audience    `gorm:"type:varchar(20);default:'any'" json:"audience"`
	Sensitivity     Sensitivity `gorm:"type:varchar(20);default:'normal'" json:"sensitivity"`
	DisclosureLevel int         `gorm:"default:1" json:"disclosure_level"`
	Keywords        StringList  `gorm:"serializer:json" json:"keywords"`
	IsPublished     bool        `gorm:"default:false;index" json:"is_published"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Domain  *Domain         `gorm:"foreignKey:DomainID" json:"domain,omitempty"`
	Details *ContentDetails `gorm:"foreignKey:ContentItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"details,omitempty"`
}

// TableName specifies the table name for the ContentItem model.
func (ContentItem) TableName() string {
	return "content_items"
}

// BeforeCreate assigns a UUID primary key if none was provided.
func (i *ContentItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ContentDetails holds the long-form body for a ContentItem, one-to-one.
// It is created together with its parent item and updated independently
// thereafter (backfill operations touch only this table).
type ContentDetails struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ContentItemID string `gorm:"uniqueIndex;not null;type:varchar(36)" json:"content_item_id"`

	UnderstandTitle    string       `gorm:"type:text" json:"understand_title"`
	UnderstandBody     string       `gorm:"type:text" json:"understand_body"`
	UnderstandExamples string       `gorm:"type:text" json:"understand_examples"`
	UnderstandInsights StringList   `gorm:"serializer:json" json:"understand_insights"`
	ReflectPrompts     StringList   `gorm:"serializer:json" json:"reflect_prompts"`
	GrowTitle          string       `gorm:"type:text" json:"grow_title"`
	GrowSteps          GrowStepList `gorm:"serializer:json" json:"grow_steps"`
	GrowObstacles      string       `gorm:"type:text" json:"grow_obstacles"`
	SupportIntro       string       `gorm:"type:text" json:"support_intro"`
	SupportResources   StringList   `gorm:"serializer:json" json:"support_resources"`
	WhenToSeekHelp     string       `gorm:"type:text" json:"when_to_seek_help"`
	Affirmation        string       `gorm:"type:text" json:"affirmation"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the ContentDetails model.
func (ContentDetails) TableName() string {
	return "content_details"
}
