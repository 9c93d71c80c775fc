package services

import (
	"project/models"
	"project/utils"
)

// domainNameToSlug maps the eleven fixed domain display names onto their
// slugs. Generated content always uses the exact display names, so this
// table covers the common path; anything else falls back to slug derivation.
var domainNameToSlug = map[string]string{
	"Relationships & Connection":               "relationships",
	"Family, Parenting & Home Life":            "family",
	"Identity, Belonging & Inclusion":          "identity",
	"Grief, Change & Life Events":              "grief",
	"Calm, Confidence & Emotional Skills":      "calm",
	"Sleep, Energy & Recovery":                 "sleep",
	"Health, Injury & Physical Wellbeing":      "health",
	"Money, Housing & Practical Life":          "money",
	"Work, Purpose & Service Culture":          "work",
	"Leadership, Boundaries & Communication":   "leadership",
	"Transition, Resettlement & Civilian Life": "transition",
}

// ResolveDomainSlug maps a domain display name to a slug: first the fixed
// table, then a derived fallback (lowercase, non-letter runs collapsed to
// single hyphens). Pure function; the result still has to be looked up
// against the live domain table.
func ResolveDomainSlug(name string) string {
	if slug, ok := domainNameToSlug[name]; ok {
		return slug
	}
	return utils.DomainSlug(name)
}

// DefaultDomains returns the fixed set of eleven domains used to seed an
// empty database.
func DefaultDomains() []models.Domain {
	return []models.Domain{
		{Slug: "relationships", Name: "Relationships & Connection", Icon: "🤝", DisplayOrder: 1, IsActive: true},
		{Slug: "family", Name: "Family, Parenting & Home Life", Icon: "🏠", DisplayOrder: 2, IsActive: true},
		{Slug: "identity", Name: "Identity, Belonging & Inclusion", Icon: "🧭", DisplayOrder: 3, IsActive: true},
		{Slug: "grief", Name: "Grief, Change & Life Events", Icon: "🕊️", DisplayOrder: 4, IsActive: true},
		{Slug: "calm", Name: "Calm, Confidence & Emotional Skills", Icon: "🌿", DisplayOrder: 5, IsActive: true},
		{Slug: "sleep", Name: "Sleep, Energy & Recovery", Icon: "🌙", DisplayOrder: 6, IsActive: true},
		{Slug: "health", Name: "Health, Injury & Physical Wellbeing", Icon: "💪", DisplayOrder: 7, IsActive: true},
		{Slug: "money", Name: "Money, Housing & Practical Life", Icon: "🏦", DisplayOrder: 8, IsActive: true},
		{Slug: "work", Name: "Work, Purpose & Service Culture", Icon: "🎖️", DisplayOrder: 9, IsActive: true},
		{Slug: "leadership", Name: "Leadership, Boundaries & Communication", Icon: "🗣️", DisplayOrder: 10, IsActive: true},
		{Slug: "transition", Name: "Transition, Resettlement & Civilian Life", Icon: "🚀", DisplayOrder: 11, IsActive: true},
	}
}
