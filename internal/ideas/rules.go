package ideas

import (
	"fmt"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/signals"
)

// Fallback thresholds in days since last contact.
const (
	reactivationThreshold = 14
	followUpThreshold     = 7
)

// rulesIdeas is the deterministic fallback strategy. It always returns
// exactly MaxIdeasPerAnalysis ideas.
func rulesIdeas(enriched *model.EnrichedContext, events []signals.Event) []model.Idea {
	var out []model.Idea
	days := enriched.Metrics.DaysSinceLastContact
	name := enriched.Contact.FullName()

	if days > reactivationThreshold {
		out = append(out, model.Idea{
			Title:           fmt.Sprintf("Reconnect with %s", name),
			Channel:         "call",
			Reason:          fmt.Sprintf("No contact in %d days, the relationship is going cold", days),
			Action:          "Call to check in and surface any new priorities on their side",
			Priority:        model.PriorityHigh,
			SuggestedTiming: "This week",
		})
	} else if days > followUpThreshold {
		out = append(out, model.Idea{
			Title:           fmt.Sprintf("Follow up with %s", name),
			Channel:         "email",
			Reason:          fmt.Sprintf("Last touchpoint was %d days ago", days),
			Action:          "Send a short follow-up email referencing the last conversation",
			Priority:        model.PriorityMedium,
			SuggestedTiming: "Next 2-3 days",
		})
	}

	if deal := enriched.PrimaryDeal(); deal != nil {
		out = append(out, model.Idea{
			Title:    fmt.Sprintf("Advance deal: %s", deal.Name),
			Channel:  "email",
			Reason:   fmt.Sprintf("Open deal currently in stage %q", deal.Stage),
			Action:   "Share material that addresses the current stage and propose a next step",
			Priority: model.PriorityHigh,
		})
	}

	if len(events) > 0 {
		out = append(out, model.Idea{
			Title:           fmt.Sprintf("Invite to %s", events[0].Name),
			Channel:         "email",
			Reason:          "An upcoming event is a low-pressure reason to reach out",
			Action:          fmt.Sprintf("Send a personal invitation to %s", events[0].Name),
			Priority:        model.PriorityMedium,
			SuggestedTiming: "Before " + events[0].Date.Format("Jan 2"),
		})
	}

	for len(out) < model.MaxIdeasPerAnalysis {
		out = append(out, model.Idea{
			Title:    "Share relevant content",
			Channel:  "email",
			Reason:   "Stay visible between active conversations",
			Action:   "Send an article or case study relevant to their industry",
			Priority: model.PriorityLow,
		})
	}

	return out[:model.MaxIdeasPerAnalysis]
}
