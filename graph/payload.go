package graph

import (
	"errors"
	"time"
)

// Triple is one subject/predicate/object assertion about a run or a
// finding. The shape matches what the downstream graph ingester expects.
type Triple struct {
	Subject    string    `json:"subject"`
	Predicate  string    `json:"predicate"`
	Object     any       `json:"object"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

// EntityPayload is the message body for entity ingestion.
type EntityPayload struct {
	EntityID  string    `json:"id"`
	Triples   []Triple  `json:"triples"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the payload before publication.
func (e *EntityPayload) Validate() error {
	if e.EntityID == "" {
		return errors.New("entity ID is required")
	}
	if len(e.Triples) == 0 {
		return errors.New("entity has no triples")
	}
	return nil
}
