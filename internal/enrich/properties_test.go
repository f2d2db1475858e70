package enrich

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/pkg/hubspot"
)

func TestCommunicationSubjectAndBodyCapped(t *testing.T) {
	rec := hubspot.EngagementRecord{
		Engagement: hubspot.Engagement{ID: 1, Type: "EMAIL", Timestamp: time.Now().UnixMilli()},
		Metadata: hubspot.EngagementMetadata{
			Subject: strings.Repeat("s", 300),
			Body:    strings.Repeat("b", 900),
		},
	}

	comm := communicationFromRecord(rec)
	assert.Len(t, comm.Subject, maxCommunicationSubject)
	assert.Len(t, comm.Body, maxCommunicationBody)
}

func TestCommunicationShortFieldsUntouched(t *testing.T) {
	rec := hubspot.EngagementRecord{
		Engagement: hubspot.Engagement{ID: 1, Type: "CALL", Timestamp: time.Now().UnixMilli()},
		Metadata:   hubspot.EngagementMetadata{Title: "Quick sync", Notes: "Went well"},
	}

	comm := communicationFromRecord(rec)
	assert.Equal(t, "Quick sync", comm.Subject)
	assert.Equal(t, "Went well", comm.Body)
	assert.Equal(t, model.CommCall, comm.Type)
}
