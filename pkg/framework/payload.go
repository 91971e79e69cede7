package framework

import (
	"encoding/json"
	"fmt"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/macropilot/server/pkg/types"
)

// DecodeEventData unmarshals the event payload into v. Pub/Sub-triggered
// events arrive wrapped in a message envelope with base64 data; direct
// CloudEvents (and tests) carry the payload as-is. Both shapes are accepted.
func DecodeEventData(e event.Event, v interface{}) error {
	var msg types.PubSubMessage
	if err := e.DataAs(&msg); err == nil && len(msg.Message.Data) > 0 {
		if err := json.Unmarshal(msg.Message.Data, v); err != nil {
			return fmt.Errorf("decode pubsub payload: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(e.Data(), v); err != nil {
		return fmt.Errorf("decode event payload: %w", err)
	}
	return nil
}
