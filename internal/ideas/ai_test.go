package ideas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/resilience"
)

const validResponse = `{"ideas":[
  {"title":"Check in","channel":"call","reason":"It has been a while","action":"Call them","priority":"high"},
  {"title":"Send case study","channel":"email","reason":"Relevant win","action":"Email the case study","priority":"Medium","suggested_timing":"This week"}
]}`

func TestParseIdeas(t *testing.T) {
	out, err := parseIdeas(validResponse)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, model.PriorityHigh, out[0].Priority)
	assert.Equal(t, "This week", out[1].SuggestedTiming)
}

func TestParseIdeasStripsCodeFence(t *testing.T) {
	out, err := parseIdeas("```json\n" + validResponse + "\n```")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestParseIdeasSurroundingProse(t *testing.T) {
	out, err := parseIdeas("Here are the ideas:\n" + validResponse + "\nHope this helps!")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestParseIdeasTypeAliasForChannel(t *testing.T) {
	out, err := parseIdeas(`{"ideas":[{"title":"T","type":"email","reason":"R","action":"A","priority":"low"}]}`)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "email", out[0].Channel)
}

func TestParseIdeasTruncatesToThree(t *testing.T) {
	resp := `{"ideas":[
	  {"title":"1","channel":"email","reason":"r","action":"a","priority":"low"},
	  {"title":"2","channel":"email","reason":"r","action":"a","priority":"low"},
	  {"title":"3","channel":"email","reason":"r","action":"a","priority":"low"},
	  {"title":"4","channel":"email","reason":"r","action":"a","priority":"low"}
	]}`
	out, err := parseIdeas(resp)
	require.NoError(t, err)
	assert.Len(t, out, model.MaxIdeasPerAnalysis)
}

func TestParseIdeasDropsInvalidEntries(t *testing.T) {
	resp := `{"ideas":[
	  {"title":"","channel":"email","reason":"r","action":"a","priority":"low"},
	  {"title":"ok","channel":"email","reason":"r","action":"a","priority":"low"}
	]}`
	out, err := parseIdeas(resp)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ok", out[0].Title)
}

func TestParseIdeasFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty response", ""},
		{"no json", "I cannot help with that."},
		{"malformed json", `{"ideas":[{"title":`},
		{"empty ideas array", `{"ideas":[]}`},
		{"all entries invalid", `{"ideas":[{"title":"","channel":"","reason":"","action":""}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseIdeas(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, resilience.ErrValidation))
		})
	}
}
