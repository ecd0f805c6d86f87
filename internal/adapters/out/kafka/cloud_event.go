package kafka

import (
	"time"

	"fleetkernel/internal/adapters/views"
	"fleetkernel/internal/core/ports"

	"github.com/google/uuid"
)

const (
	specVersion     = "1.0"
	eventSource     = "/fleetkernel/objectpool"
	dataContentType = "application/json"
)

// CloudEvent is the envelope written to the object events topic.
type CloudEvent struct {
	SpecVersion     string          `json:"specversion"`
	ID              string          `json:"id"`
	Source          string          `json:"source"`
	Type            string          `json:"type"`
	Subject         string          `json:"subject"`
	Time            time.Time       `json:"time"`
	DataContentType string          `json:"datacontenttype"`
	Data            ObjectEventData `json:"data"`

	// CommitID and Sequence are extension attributes locating the event within
	// the pool commit that produced it.
	CommitID string `json:"commitid,omitempty"`
	Sequence int    `json:"sequence"`
}

// ObjectEventData carries both snapshots of the changed object.
type ObjectEventData struct {
	Kind     string `json:"kind"`
	ID       string `json:"id"`
	Current  any    `json:"current"`
	Previous any    `json:"previous"`
}

func newCloudEvent(event ports.ObjectEvent, now time.Time) CloudEvent {
	ref := event.Ref()
	return CloudEvent{
		SpecVersion:     specVersion,
		ID:              uuid.NewString(),
		Source:          eventSource,
		Type:            "fleetkernel.object." + string(event.Type),
		Subject:         ref.ID().String(),
		Time:            now.UTC(),
		DataContentType: dataContentType,
		CommitID:        commitIDOf(event),
		Sequence:        event.Sequence,
		Data: ObjectEventData{
			Kind:     ref.Kind().String(),
			ID:       ref.ID().String(),
			Current:  views.FromObject(event.Current),
			Previous: views.FromObject(event.Previous),
		},
	}
}

func commitIDOf(event ports.ObjectEvent) string {
	if event.CommitID.Validate() != nil {
		return ""
	}
	return event.CommitID.String()
}
