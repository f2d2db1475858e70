// Package metrics derives engagement metrics from enriched contact data.
// Everything here is pure: no I/O, no clock reads, fully deterministic given
// the same inputs and reference time.
package metrics

import (
	"math"
	"strings"
	"time"

	"github.com/sells-group/outreach-cli/internal/model"
)

// closedStagePatterns mark a deal as no longer active. Matching is a
// case-insensitive substring check against the resolved stage label.
var closedStagePatterns = []string{"closed", "won", "lost"}

// Compute derives Metrics for one contact. Communications must already be
// sorted newest-first and filtered of the pipeline's own tasks; now is the
// reference time, injected so results are reproducible in tests.
func Compute(contact model.Contact, deals []model.Deal, comms []model.Communication, now time.Time) model.Metrics {
	m := model.Metrics{
		TotalCommunications: len(comms),
	}

	for _, d := range deals {
		m.TotalDealAmount += d.Amount
		if isActiveStage(d.Stage) {
			m.ActiveDeals++
		}
	}

	m.DaysSinceLastContact = daysSinceLastContact(contact, comms, now)
	if contact.CreatedAt != nil {
		m.DaysSinceCreation = daysBetween(*contact.CreatedAt, now)
	}
	m.DaysSinceLastActivity = daysSinceLastActivity(contact, now)

	return m
}

// daysSinceLastContact uses the most recent retained communication, falling
// back to the contact's last-modified timestamp when there is no history.
func daysSinceLastContact(contact model.Contact, comms []model.Communication, now time.Time) int {
	if len(comms) > 0 {
		return daysBetween(comms[0].Timestamp, now)
	}
	if contact.LastModifiedAt != nil {
		return daysBetween(*contact.LastModifiedAt, now)
	}
	if contact.CreatedAt != nil {
		return daysBetween(*contact.CreatedAt, now)
	}
	return 0
}

func daysSinceLastActivity(contact model.Contact, now time.Time) int {
	if contact.LastModifiedAt != nil {
		return daysBetween(*contact.LastModifiedAt, now)
	}
	if contact.CreatedAt != nil {
		return daysBetween(*contact.CreatedAt, now)
	}
	return 0
}

// daysBetween is the calendar-day distance: ceiling of the absolute time
// delta in days, so any non-zero delta counts as at least one day.
func daysBetween(a, b time.Time) int {
	delta := b.Sub(a)
	if delta < 0 {
		delta = -delta
	}
	return int(math.Ceil(delta.Hours() / 24))
}

func isActiveStage(stage string) bool {
	lower := strings.ToLower(stage)
	for _, p := range closedStagePatterns {
		if strings.Contains(lower, p) {
			return false
		}
	}
	return true
}
