package model

import (
	"strings"
	"time"
)

// Contact is a CRM contact record. The CRM is the source of truth; the
// pipeline never mutates a contact except by associating tasks to it.
type Contact struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	LifecycleStage string     `json:"lifecycle_stage,omitempty"`
	LeadStatus     string     `json:"lead_status,omitempty"`
	OwnerID        string     `json:"owner_id,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	LastModifiedAt *time.Time `json:"last_modified_at,omitempty"`
}

// FullName joins first and last name, falling back to the email address so
// task subjects never end up blank.
func (c Contact) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name != "" {
		return name
	}
	if c.Email != "" {
		return c.Email
	}
	return "Unknown contact"
}

// Company is the contact's associated company. A contact may have none, in
// which case downstream code treats the company as "not specified".
type Company struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Domain        string `json:"domain,omitempty"`
	Industry      string `json:"industry,omitempty"`
	Employees     int    `json:"employees,omitempty"`
	AnnualRevenue string `json:"annual_revenue,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Country       string `json:"country,omitempty"`
}

// Deal is an associated deal with its stage and pipeline already resolved to
// human-readable labels. This is the only deal shape downstream components
// see; raw CRM records never leave the enricher.
type Deal struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Stage          string     `json:"stage"`
	StageID        string     `json:"stage_id,omitempty"`
	Pipeline       string     `json:"pipeline"`
	PipelineID     string     `json:"pipeline_id,omitempty"`
	Amount         float64    `json:"amount"`
	Currency       string     `json:"currency"`
	CloseDate      *time.Time `json:"close_date,omitempty"`
	Type           string     `json:"type,omitempty"`
	OwnerID        string     `json:"owner_id,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	LastModifiedAt *time.Time `json:"last_modified_at,omitempty"`
}

// CommunicationType enumerates the kinds of logged engagements.
type CommunicationType string

const (
	CommEmail   CommunicationType = "email"
	CommCall    CommunicationType = "call"
	CommNote    CommunicationType = "note"
	CommMeeting CommunicationType = "meeting"
	CommTask    CommunicationType = "task"
	CommOther   CommunicationType = "other"
)

// CommDirection marks whether a communication was received or sent.
type CommDirection string

const (
	DirectionInbound  CommDirection = "inbound"
	DirectionOutbound CommDirection = "outbound"
)

// Communication is a single logged interaction with the contact. Subject and
// body are truncated at ingest to keep prompts and task bodies bounded.
type Communication struct {
	ID        string            `json:"id"`
	Type      CommunicationType `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body,omitempty"`
	Direction CommDirection     `json:"direction"`
	OwnerID   string            `json:"owner_id,omitempty"`
}

// TaskSubjectMarker prefixes every task subject this pipeline creates in the
// CRM. Communications whose subject carries the marker are the pipeline's own
// output and must be excluded from enrichment, otherwise the next run would
// count them as real contact activity and corrupt the days-since-contact
// metric.
const TaskSubjectMarker = "Outreach Ideas"

// IsSelfTask reports whether the communication is a task created by this
// pipeline on a previous run.
func (c Communication) IsSelfTask() bool {
	return c.Type == CommTask && strings.Contains(c.Subject, TaskSubjectMarker)
}
