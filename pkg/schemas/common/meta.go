package common

import (
	"time"

	"github.com/google/uuid"
)

type Meta struct {
	// Trace / request correlation ID
	CorrelationID *string `json:"correlation_id,omitempty"`
	// Unique message ID
	ID string `json:"id"`
	// Emitting service and version
	Producer *string `json:"producer,omitempty"`
	// Timestamp when the message was emitted
	Time time.Time `json:"time"`
	// Message name and version, e.g. cytube.playlist.add.v1
	Type string `json:"type"`
}

// NewMeta builds publish-ready metadata for a message of the given type:
// fresh UUID, UTC timestamp, producer stamped.
func NewMeta(msgType, producer string) Meta {
	return Meta{
		ID:       uuid.NewString(),
		Producer: &producer,
		Time:     time.Now().UTC(),
		Type:     msgType,
	}
}
