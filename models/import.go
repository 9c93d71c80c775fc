package models

// ContentCandidate is one AI-generated content item as it arrives on the
// import endpoint (and as the generation endpoint produces it). Field names
// follow the wire format the generator is instructed to emit.
type ContentCandidate struct {
	ID              string   `json:"id,omitempty"` // Optional; used as the slug when present
	Domain          string   `json:"domain"`       // Display name, e.g. "Relationships & Connection"
	Pillar          string   `json:"pillar"`       // Case-insensitive: Understand|Reflect|Grow|Support
	Label           string   `json:"label"`
	Microcopy       string   `json:"microcopy"`
	Audience        string   `json:"audience,omitempty"` // Underscore variant accepted, e.g. "service_member"
	Sensitivity     string   `json:"sensitivity,omitempty"`
	DisclosureLevel int      `json:"disclosure_level,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`

	// Pillar-specific deep content. Absent fields never fail the item;
	// defaults/empty values are written instead.
	UnderstandTitle    string     `json:"understand_title,omitempty"`
	UnderstandBody     string     `json:"understand_body,omitempty"`
	UnderstandExamples string     `json:"understand_examples,omitempty"`
	UnderstandInsights []string   `json:"understand_insights,omitempty"`
	ReflectPrompts     []string   `json:"reflect_prompts,omitempty"`
	GrowTitle          string     `json:"grow_title,omitempty"`
	GrowSteps          []GrowStep `json:"grow_steps,omitempty"`
	GrowObstacles      string     `json:"grow_obstacles,omitempty"`
	SupportIntro       string     `json:"support_intro,omitempty"`
	SupportResources   []string   `json:"support_resources,omitempty"`
	WhenToSeekHelp     string     `json:"when_to_seek_help,omitempty"`
	Affirmation        string     `json:"affirmation,omitempty"`
}

// ImportRequest is the document posted to the import endpoint and the shape
// the generation endpoint returns.
type ImportRequest struct {
	Items []ContentCandidate `json:"items"`
}

// ImportResult aggregates per-item outcomes for one import batch. Errors
// holds human-readable messages for both skips and failures.
type ImportResult struct {
	Message string   `json:"message"`
	Success int      `json:"success"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// GenerateRequest carries run-time parameters for the generation endpoint.
type GenerateRequest struct {
	BatchSize     int      `json:"batchSize,omitempty"`
	FocusDomain   string   `json:"focusDomain,omitempty"`
	ExcludeIDs    []string `json:"excludeIds,omitempty"`
	ExcludeLabels []string `json:"excludeLabels,omitempty"`
}

// StatsResponse is the dashboard summary returned by the stats endpoint.
type StatsResponse struct {
	TotalContent     int64 `json:"totalContent"`
	PublishedContent int64 `json:"publishedContent"`
	DraftContent     int64 `json:"draftContent"`
	Domains          int64 `json:"domains"`
	Journeys         int64 `json:"journeys"`
}
