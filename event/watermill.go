package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	DefaultTopic = "bpmn.events" // Default topic, used when no topic is provided.

	MetadataActivityId = "activity_id"
	MetadataEventType  = "event_type"
)

// NewWatermillPublisher creates a publisher, which sends JSON encoded events to a watermill topic.
// If topic is empty, the [DefaultTopic] is used.
func NewWatermillPublisher(publisher message.Publisher, topic string) *WatermillPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &WatermillPublisher{publisher: publisher, topic: topic}
}

type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

func (p *WatermillPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %v", err)
	}

	msg := message.NewMessage(watermill.NewULID(), payload)
	msg.Metadata.Set(MetadataActivityId, event.ActivityId)
	msg.Metadata.Set(MetadataEventType, event.Type.String())
	msg.SetContext(ctx)

	return p.publisher.Publish(p.topic, msg)
}

// Topic returns the topic, events are published to.
func (p *WatermillPublisher) Topic() string {
	return p.topic
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// DecodeMessage decodes an event, published by a [WatermillPublisher].
func DecodeMessage(msg *message.Message) (Event, error) {
	var event Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal event of message %s: %v", msg.UUID, err)
	}
	return event, nil
}
