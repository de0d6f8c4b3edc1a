// Package graph publishes validation runs and their findings to the
// knowledge graph as triple entities over NATS. Publication is optional;
// a nil connection turns every publish into a no-op so the validator runs
// unchanged without a broker.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/obokit/gafcheck/report"
	"github.com/obokit/gafcheck/vocabulary"
)

// sourceName tags every published triple with its producer.
const sourceName = "gafcheck.validate"

// Publisher publishes run entities to the graph ingestion subject.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// NewPublisher creates a publisher over an existing connection. The
// ingestion subject is <prefix>.ingest.entity. A nil connection is
// allowed and disables publishing.
func NewPublisher(nc *nats.Conn, prefix string) *Publisher {
	if prefix == "" {
		prefix = "gafcheck"
	}
	return &Publisher{
		nc:      nc,
		subject: fmt.Sprintf("%s.ingest.entity", prefix),
	}
}

// PublishReport publishes one run entity plus one entity per retained
// finding sample. Counting metadata covers the full run; only the sampled
// findings become entities.
func (p *Publisher) PublishReport(ctx context.Context, rep *report.Report) error {
	if p == nil || p.nc == nil {
		return nil // graceful degradation without a broker
	}

	now := time.Now()
	runEntity := RunEntityID(rep.RunID)

	run := &EntityPayload{
		EntityID: runEntity,
		Triples: []Triple{
			p.triple(runEntity, vocabulary.RunInput, rep.Input, now),
			p.triple(runEntity, vocabulary.RunTotal, rep.TotalRecords, now),
			p.triple(runEntity, vocabulary.RunSkipped, rep.SkippedRecords, now),
			p.triple(runEntity, vocabulary.RunFinishedAt, rep.FinishedAt.Format(time.RFC3339), now),
		},
		UpdatedAt: now,
	}
	if err := p.publish(run); err != nil {
		return err
	}

	sequence := 0
	for _, summary := range rep.Rules {
		for _, sample := range summary.Samples {
			entityID := FindingEntityID(rep.RunID, sequence)
			sequence++

			finding := &EntityPayload{
				EntityID: entityID,
				Triples: []Triple{
					p.triple(entityID, vocabulary.IssueRule, sample.Rule, now),
					p.triple(entityID, vocabulary.IssueSeverity, sample.Severity.String(), now),
					p.triple(entityID, vocabulary.IssueLine, sample.Line, now),
					p.triple(entityID, vocabulary.IssueField, sample.Field, now),
					p.triple(entityID, vocabulary.IssueMessage, sample.Message, now),
					p.triple(entityID, vocabulary.IssueRun, runEntity, now),
				},
				UpdatedAt: now,
			}
			if err := p.publish(finding); err != nil {
				return err
			}
		}
	}

	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush run entities: %w", err)
	}
	return nil
}

func (p *Publisher) triple(subject, predicate string, object any, now time.Time) Triple {
	return Triple{
		Subject:    subject,
		Predicate:  predicate,
		Object:     object,
		Source:     sourceName,
		Timestamp:  now,
		Confidence: 1.0,
	}
}

func (p *Publisher) publish(payload *EntityPayload) error {
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid entity %s: %w", payload.EntityID, err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal entity %s: %w", payload.EntityID, err)
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish entity %s: %w", payload.EntityID, err)
	}
	return nil
}

// RunEntityID generates a consistent entity ID for a validation run.
// Format: gafcheck.run.<run-id>
func RunEntityID(runID string) string {
	return fmt.Sprintf("gafcheck.run.%s", runID)
}

// FindingEntityID generates a consistent entity ID for one finding.
// Format: gafcheck.run.<run-id>.finding.<n>
func FindingEntityID(runID string, n int) string {
	return fmt.Sprintf("gafcheck.run.%s.finding.%d", runID, n)
}
