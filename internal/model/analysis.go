package model

import "time"

// Provenance records which strategy produced the ideas. The distinction
// between "backend never tried" and "backend tried and failed" is preserved
// so consumers can tell a configuration gap from an outage.
type Provenance string

const (
	ProvenanceAI               Provenance = "ai"
	ProvenanceFallbackError    Provenance = "fallback_error"
	ProvenanceFallbackDisabled Provenance = "fallback_disabled"
)

// HighPriorityContactThreshold is the days-without-contact count past which
// an analysis is flagged high priority regardless of idea priorities.
const HighPriorityContactThreshold = 14

// AnalysisResult is the final per-contact output: a context summary plus the
// ranked ideas and their provenance.
type AnalysisResult struct {
	ContactID       string          `json:"contact_id"`
	ContactName     string          `json:"contact_name"`
	ContactEmail    string          `json:"contact_email"`
	ContactPhone    string          `json:"contact_phone,omitempty"`
	CompanyName     string          `json:"company_name,omitempty"`
	CompanyDomain   string          `json:"company_domain,omitempty"`
	CompanyIndustry string          `json:"company_industry,omitempty"`
	LifecycleStage  string          `json:"lifecycle_stage,omitempty"`
	OwnerID         string          `json:"owner_id,omitempty"`
	Metrics         Metrics         `json:"metrics"`
	Deals           []Deal          `json:"deals"`
	Communications  []Communication `json:"communications"`
	Ideas           []Idea          `json:"ideas"`
	Provenance      Provenance      `json:"provenance"`
	GeneratedWithAI bool            `json:"generated_with_ai"`
	HighPriority    bool            `json:"high_priority"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// TaskSource identifies which external system holds a published task.
type TaskSource string

const (
	SourceCRM     TaskSource = "crm"
	SourceTracker TaskSource = "tracker"
)

// PublishedTask describes one task created in an external system.
type PublishedTask struct {
	ID     string     `json:"id"`
	Source TaskSource `json:"source"`
	Name   string     `json:"name"`
	URL    string     `json:"url,omitempty"`
	Status string     `json:"status,omitempty"`
}
