package publish

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/outreach-cli/internal/model"
)

var amountPrinter = message.NewPrinter(language.English)

// formatAmount renders a deal amount with thousands separators.
func formatAmount(amount float64, currency string) string {
	formatted := amountPrinter.Sprintf("%.2f", amount)
	if currency == "" {
		return "$" + formatted
	}
	return formatted + " " + currency
}

// taskSubject builds the CRM task subject. The marker prefix is what lets
// the enricher recognize and exclude this task on later runs.
func taskSubject(result *model.AnalysisResult) string {
	return fmt.Sprintf("%s - %s", model.TaskSubjectMarker, result.ContactName)
}

// taskBody renders the full analysis as the CRM task body: contact snapshot,
// metrics, ideas, and the recent communication log.
func taskBody(result *model.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Outreach analysis for %s", result.ContactName)
	if result.ContactEmail != "" {
		fmt.Fprintf(&b, " <%s>", result.ContactEmail)
	}
	b.WriteString("\n")
	if result.CompanyName != "" {
		fmt.Fprintf(&b, "Company: %s", result.CompanyName)
		if result.CompanyIndustry != "" {
			fmt.Fprintf(&b, " (%s)", result.CompanyIndustry)
		}
		b.WriteString("\n")
	}

	m := result.Metrics
	fmt.Fprintf(&b, "\nDays since last contact: %d\n", m.DaysSinceLastContact)
	fmt.Fprintf(&b, "Active deals: %d, total value %s\n",
		m.ActiveDeals, formatAmount(m.TotalDealAmount, ""))
	if len(result.Deals) > 0 {
		d := result.Deals[0]
		fmt.Fprintf(&b, "Primary deal: %s (%s, %s)\n",
			d.Name, d.Stage, formatAmount(d.Amount, d.Currency))
	}

	source := "rule engine"
	if result.GeneratedWithAI {
		source = "AI"
	}
	fmt.Fprintf(&b, "\nIdeas (%s):\n", source)
	for i, idea := range result.Ideas {
		fmt.Fprintf(&b, "%d. [%s] %s (%s)\n", i+1, idea.Priority, idea.Title, idea.Channel)
		fmt.Fprintf(&b, "   Why: %s\n", idea.Reason)
		fmt.Fprintf(&b, "   Do: %s\n", idea.Action)
		if idea.SuggestedTiming != "" {
			fmt.Fprintf(&b, "   When: %s\n", idea.SuggestedTiming)
		}
	}

	if len(result.Communications) > 0 {
		recent := result.Communications
		if len(recent) > 3 {
			recent = recent[:3]
		}
		b.WriteString("\nRecent communications:\n")
		for _, comm := range recent {
			fmt.Fprintf(&b, "- %s %s %s: %s\n",
				comm.Timestamp.Format("2006-01-02"), comm.Direction, comm.Type, comm.Subject)
		}
	}

	return b.String()
}

// trackerDescription renders one idea as a structured tracker task body.
func trackerDescription(result *model.AnalysisResult, idea model.Idea) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contact: %s", result.ContactName)
	if result.ContactEmail != "" {
		fmt.Fprintf(&b, " <%s>", result.ContactEmail)
	}
	b.WriteString("\n")
	if result.CompanyName != "" {
		fmt.Fprintf(&b, "Company: %s\n", result.CompanyName)
	}
	fmt.Fprintf(&b, "Channel: %s\n", idea.Channel)
	fmt.Fprintf(&b, "Why: %s\n", idea.Reason)
	fmt.Fprintf(&b, "Action: %s\n", idea.Action)
	if idea.SuggestedTiming != "" {
		fmt.Fprintf(&b, "Timing: %s\n", idea.SuggestedTiming)
	}
	return b.String()
}
