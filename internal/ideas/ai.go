package ideas

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/resilience"
)

type ideasEnvelope struct {
	Ideas []rawIdea `json:"ideas"`
}

type rawIdea struct {
	Title           string `json:"title"`
	Channel         string `json:"channel"`
	Type            string `json:"type"`
	Reason          string `json:"reason"`
	Action          string `json:"action"`
	Priority        string `json:"priority"`
	SuggestedTiming string `json:"suggested_timing"`
}

// parseIdeas extracts and validates the ideas array from a model response.
// Ideas failing validation are dropped; zero valid ideas is an error so the
// caller falls back to the rule strategy.
func parseIdeas(text string) ([]model.Idea, error) {
	cleaned := extractJSON(text)
	if cleaned == "" {
		return nil, eris.Wrap(resilience.ErrValidation, "ideas: no JSON object in response")
	}

	var envelope ideasEnvelope
	if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
		return nil, eris.Wrap(resilience.ErrValidation, "ideas: malformed response: "+err.Error())
	}

	var out []model.Idea
	for _, raw := range envelope.Ideas {
		channel := raw.Channel
		if channel == "" {
			channel = raw.Type
		}
		idea := model.Idea{
			Title:           strings.TrimSpace(raw.Title),
			Channel:         strings.TrimSpace(channel),
			Reason:          strings.TrimSpace(raw.Reason),
			Action:          strings.TrimSpace(raw.Action),
			Priority:        model.ParsePriority(raw.Priority),
			SuggestedTiming: strings.TrimSpace(raw.SuggestedTiming),
		}
		if err := idea.Validate(); err != nil {
			continue
		}
		out = append(out, idea)
		if len(out) == model.MaxIdeasPerAnalysis {
			break
		}
	}

	if len(out) == 0 {
		return nil, eris.Wrap(resilience.ErrValidation, "ideas: response contained no valid ideas")
	}
	return out, nil
}

// extractJSON strips markdown code fences and surrounding prose, returning
// the outermost JSON object in the text.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}
