package graph

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obokit/gafcheck/report"
	"github.com/obokit/gafcheck/rules"
)

func TestEntityIDs(t *testing.T) {
	assert.Equal(t, "gafcheck.run.abc", RunEntityID("abc"))
	assert.Equal(t, "gafcheck.run.abc.finding.3", FindingEntityID("abc", 3))
}

func TestPayloadValidate(t *testing.T) {
	payload := &EntityPayload{}
	require.Error(t, payload.Validate())

	payload.EntityID = "gafcheck.run.x"
	require.Error(t, payload.Validate())

	payload.Triples = []Triple{{Subject: "s", Predicate: "p", Object: "o", Timestamp: time.Now()}}
	assert.NoError(t, payload.Validate())
}

func TestPublishWithoutConnection(t *testing.T) {
	agg := report.NewAggregator(rules.Default())
	agg.Record([]rules.Issue{{
		Rule:     rules.FormatRuleID(11),
		Severity: rules.SeverityError,
		Line:     4,
		Message:  "test",
	}})

	pub := NewPublisher(nil, "gafcheck")
	assert.NoError(t, pub.PublishReport(context.Background(), agg.Finish()))
}

func TestSubjectPrefix(t *testing.T) {
	assert.Equal(t, "custom.ingest.entity", NewPublisher(nil, "custom").subject)
	assert.Equal(t, "gafcheck.ingest.entity", NewPublisher(nil, "").subject)
}
