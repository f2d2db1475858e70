package ideas

import (
	"fmt"
	"strings"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/signals"
)

const systemPrompt = `You are a sales outreach assistant. Given a contact's context, propose up to 3 concrete outreach ideas.

Respond with ONLY a JSON object of this shape, no prose before or after:
{"ideas":[{"title":"...","channel":"email|call|linkedin|meeting","reason":"...","action":"...","priority":"High|Medium|Low","suggested_timing":"..."}]}`

// buildSystemPrompt appends the outreach guide, when available, to the base
// instruction.
func buildSystemPrompt(guide string) string {
	if guide == "" {
		return systemPrompt
	}
	return systemPrompt + "\n\nFollow this outreach guide:\n\n" + guide
}

// buildUserPrompt renders the enriched context as a compact plain-text
// briefing. Inputs are already bounded upstream, so the prompt size is too.
func buildUserPrompt(enriched *model.EnrichedContext, events []signals.Event, news []signals.NewsItem) string {
	var b strings.Builder
	c := enriched.Contact
	m := enriched.Metrics

	fmt.Fprintf(&b, "Contact: %s", c.FullName())
	if c.Email != "" {
		fmt.Fprintf(&b, " <%s>", c.Email)
	}
	b.WriteString("\n")
	if c.LifecycleStage != "" {
		fmt.Fprintf(&b, "Lifecycle stage: %s\n", c.LifecycleStage)
	}

	if co := enriched.Company; co != nil {
		fmt.Fprintf(&b, "Company: %s", co.Name)
		if co.Industry != "" {
			fmt.Fprintf(&b, " (%s)", co.Industry)
		}
		if co.Employees > 0 {
			fmt.Fprintf(&b, ", %d employees", co.Employees)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Company: not specified\n")
	}

	fmt.Fprintf(&b, "Days since last contact: %d\n", m.DaysSinceLastContact)
	fmt.Fprintf(&b, "Days since contact created: %d\n", m.DaysSinceCreation)
	fmt.Fprintf(&b, "Active deals: %d (total value %.2f)\n", m.ActiveDeals, m.TotalDealAmount)

	if deal := enriched.PrimaryDeal(); deal != nil {
		fmt.Fprintf(&b, "Primary deal: %q in stage %q, amount %.2f",
			deal.Name, deal.Stage, deal.Amount)
		if deal.CloseDate != nil {
			fmt.Fprintf(&b, ", expected close %s", deal.CloseDate.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}

	if len(enriched.Communications) > 0 {
		b.WriteString("Recent communications (newest first):\n")
		for _, comm := range enriched.Communications {
			fmt.Fprintf(&b, "- [%s] %s %s: %s\n",
				comm.Timestamp.Format("2006-01-02"), comm.Direction, comm.Type, comm.Subject)
		}
	} else {
		b.WriteString("Recent communications: none on record\n")
	}

	if len(events) > 0 {
		b.WriteString("Upcoming events:\n")
		for _, e := range events {
			fmt.Fprintf(&b, "- %s on %s\n", e.Name, e.Date.Format("2006-01-02"))
		}
	}

	if len(news) > 0 {
		b.WriteString("Recent company news:\n")
		for _, item := range news {
			fmt.Fprintf(&b, "- %s", item.Title)
			if item.Summary != "" {
				fmt.Fprintf(&b, ": %s", item.Summary)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\nPropose the outreach ideas now.")
	return b.String()
}
