// Package signals supplies external context signals for idea generation:
// upcoming events the contact could be invited to and recent company news.
// Both sources are optional; an empty result set is the normal case.
package signals

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/outreach-cli/internal/model"
)

// Event is an upcoming event that outreach ideas can reference.
type Event struct {
	Name     string    `yaml:"name" json:"name"`
	Date     time.Time `yaml:"date" json:"date"`
	Location string    `yaml:"location,omitempty" json:"location,omitempty"`
	URL      string    `yaml:"url,omitempty" json:"url,omitempty"`
}

// NewsItem is a recent news mention of the contact's company.
type NewsItem struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Source provides the signals available at generation time.
type Source interface {
	UpcomingEvents(ctx context.Context, now time.Time) ([]Event, error)
	CompanyNews(ctx context.Context, company *model.Company) ([]NewsItem, error)
}

// fileSource reads events from a YAML file and has no news backend.
type fileSource struct {
	eventsFile string
}

// NewFileSource returns a Source backed by a YAML events file. An empty path
// yields a source that always reports no signals.
func NewFileSource(eventsFile string) Source {
	return &fileSource{eventsFile: eventsFile}
}

type eventsDoc struct {
	Events []Event `yaml:"events"`
}

// UpcomingEvents returns the configured events whose date is not in the
// past, soonest first. A missing file is treated as "no events".
func (s *fileSource) UpcomingEvents(_ context.Context, now time.Time) ([]Event, error) {
	if s.eventsFile == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(s.eventsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "signals: read events file")
	}

	var doc eventsDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrap(err, "signals: parse events file")
	}

	var upcoming []Event
	for _, e := range doc.Events {
		if e.Name == "" || e.Date.Before(now) {
			continue
		}
		upcoming = append(upcoming, e)
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	return upcoming, nil
}

// CompanyNews has no backing source yet. It returns no items so idea
// generation treats news as absent.
func (s *fileSource) CompanyNews(context.Context, *model.Company) ([]NewsItem, error) {
	return nil, nil
}
