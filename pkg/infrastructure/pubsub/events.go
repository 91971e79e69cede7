package pubsub

import (
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

// NewCloudEvent creates a CloudEvent v1.0 with a fresh ID and timestamp.
func NewCloudEvent(source, eventType string, data interface{}) (cloudevents.Event, error) {
	e := cloudevents.NewEvent()
	e.SetSpecVersion("1.0")
	e.SetID(uuid.NewString())
	e.SetTime(time.Now().UTC())
	e.SetType(eventType)
	e.SetSource(source)

	if err := e.SetData(cloudevents.ApplicationJSON, data); err != nil {
		return e, err
	}

	return e, nil
}

// NewUserEvent is NewCloudEvent with the event subject set to the user the
// event concerns. Downstream consumers filter on subject.
func NewUserEvent(source, eventType, userID string, data interface{}) (cloudevents.Event, error) {
	e, err := NewCloudEvent(source, eventType, data)
	if err != nil {
		return e, err
	}
	e.SetSubject(userID)
	return e, nil
}
