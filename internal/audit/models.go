// Package audit records publish-state transitions for compliance review.
// Events are written to an append-only store and mirrored to Kafka for
// downstream consumers; the Kafka leg is best-effort.
package audit

import (
	"time"

	"vayva/internal/merchant/models"
	id "vayva/pkg/domain"
)

// Action identifies the kind of transition recorded.
type Action string

const (
	ActionStorePublished        Action = "store.published"
	ActionStoreUnpublished      Action = "store.unpublished"
	ActionStorePublishOverriden Action = "store.publish_overridden"
)

// Event is one recorded publish-state transition.
type Event struct {
	ID            string               `json:"id"`
	Timestamp     time.Time            `json:"timestamp"`
	MerchantID    id.MerchantID        `json:"merchant_id"`
	ActorID       id.ActorID           `json:"actor_id"`
	ActorLabel    string               `json:"actor_label"`
	Action        Action               `json:"action"`
	Reason        string               `json:"reason,omitempty"`
	FromStatus    models.PublishStatus `json:"from_status"`
	ToStatus      models.PublishStatus `json:"to_status"`
	RequestID     string               `json:"request_id,omitempty"`
	CorrelationID string               `json:"correlation_id,omitempty"`
}
