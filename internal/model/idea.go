package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Priority is the three-level idea priority scale.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority normalizes a free-form priority string (AI responses are not
// case-consistent). Unrecognized values map to Low rather than erroring so a
// sloppy backend response still yields a usable idea.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "urgent":
		return PriorityHigh
	case "medium", "normal":
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// MaxIdeasPerAnalysis caps how many ideas one analysis may carry.
const MaxIdeasPerAnalysis = 3

// Idea is a single outreach recommendation.
type Idea struct {
	Title           string   `json:"title"`
	Channel         string   `json:"channel"`
	Reason          string   `json:"reason"`
	Action          string   `json:"action"`
	Priority        Priority `json:"priority"`
	SuggestedTiming string   `json:"suggested_timing,omitempty"`
}

// Validate checks that every required idea field is populated and the
// priority is one of the three known levels.
func (i Idea) Validate() error {
	switch {
	case strings.TrimSpace(i.Title) == "":
		return eris.New("idea: title is required")
	case strings.TrimSpace(i.Channel) == "":
		return eris.New("idea: channel is required")
	case strings.TrimSpace(i.Reason) == "":
		return eris.New("idea: reason is required")
	case strings.TrimSpace(i.Action) == "":
		return eris.New("idea: action is required")
	}
	switch i.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	default:
		return eris.New("idea: unknown priority " + string(i.Priority))
	}
}
