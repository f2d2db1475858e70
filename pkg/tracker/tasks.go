package tracker

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// TaskPriority is the tracker's four-level priority scale. Urgent is
// reserved: current pipeline priorities never map to it.
type TaskPriority string

const (
	TaskPriorityUrgent TaskPriority = "Urgent"
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityNormal TaskPriority = "Normal"
	TaskPriorityLow    TaskPriority = "Low"
)

// Task describes one task page to create in the tracker database.
type Task struct {
	Name        string
	Description string
	Status      string
	Priority    TaskPriority
	Tags        []string
}

// CreatedTask reports the identity of a created tracker task.
type CreatedTask struct {
	ID     string
	Name   string
	URL    string
	Status string
}

// CreateTask creates one task page in the given tracker database.
func CreateTask(ctx context.Context, c Client, dbID string, task Task) (*CreatedTask, error) {
	if task.Name == "" {
		return nil, eris.New("tracker: task name is required")
	}

	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: task.Name}}},
		},
		"Priority": notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(task.Priority)},
		},
	}
	if task.Status != "" {
		props["Status"] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: task.Status},
		}
	}
	if len(task.Tags) > 0 {
		opts := make([]notionapi.Option, len(task.Tags))
		for i, tag := range task.Tags {
			opts[i] = notionapi.Option{Name: tag}
		}
		props["Tags"] = notionapi.MultiSelectProperty{MultiSelect: opts}
	}

	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: props,
	}

	if task.Description != "" {
		req.Children = []notionapi.Block{
			&notionapi.ParagraphBlock{
				BasicBlock: notionapi.BasicBlock{
					Object: notionapi.ObjectTypeBlock,
					Type:   notionapi.BlockTypeParagraph,
				},
				Paragraph: notionapi.Paragraph{
					RichText: []notionapi.RichText{
						{Text: &notionapi.Text{Content: task.Description}},
					},
				},
			},
		}
	}

	page, err := c.CreatePage(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "tracker: create task "+task.Name)
	}

	return &CreatedTask{
		ID:     string(page.ID),
		Name:   task.Name,
		URL:    page.URL,
		Status: task.Status,
	}, nil
}
