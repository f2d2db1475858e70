package hubspot

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"
)

// GetDealPipelines fetches the deal pipeline/stage catalog used to resolve
// opaque stage and pipeline identifiers to their labels.
func (c *httpClient) GetDealPipelines(ctx context.Context) ([]Pipeline, error) {
	var resp pipelinesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/crm/v3/pipelines/deals", nil, nil, &resp); err != nil {
		return nil, eris.Wrap(err, "hubspot: get deal pipelines")
	}
	return resp.Results, nil
}

// StageCatalog maps stage and pipeline identifiers to their labels.
type StageCatalog struct {
	Stages    map[string]string
	Pipelines map[string]string
}

// BuildStageCatalog flattens the pipelines catalog into id->label lookups.
func BuildStageCatalog(pipelines []Pipeline) *StageCatalog {
	cat := &StageCatalog{
		Stages:    make(map[string]string),
		Pipelines: make(map[string]string),
	}
	for _, p := range pipelines {
		cat.Pipelines[p.ID] = p.Label
		for _, s := range p.Stages {
			cat.Stages[s.ID] = s.Label
		}
	}
	return cat
}

// StageLabel resolves a stage id, falling back to the raw id when the
// catalog has no entry for it.
func (c *StageCatalog) StageLabel(stageID string) string {
	if c == nil {
		return stageID
	}
	if label, ok := c.Stages[stageID]; ok {
		return label
	}
	return stageID
}

// PipelineLabel resolves a pipeline id, falling back to the raw id.
func (c *StageCatalog) PipelineLabel(pipelineID string) string {
	if c == nil {
		return pipelineID
	}
	if label, ok := c.Pipelines[pipelineID]; ok {
		return label
	}
	return pipelineID
}
