package event

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillPublisher(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 10}, watermill.NopLogger{})

	publisher := NewWatermillPublisher(pubSub, "")
	defer publisher.Close()

	assert.Equal(DefaultTopic, publisher.Topic())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, publisher.Topic())
	require.NoError(err)

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	// when
	listener := NewTakeListener("f1")
	require.NoError(listener.Notify(ctx, publisher, Execution{ProcessInstanceId: "pi-1", Time: now}))

	// then
	select {
	case msg := <-messages:
		msg.Ack()

		assert.NotEmpty(msg.UUID)
		assert.Equal("f1", msg.Metadata.Get(MetadataActivityId))
		assert.Equal("TAKE", msg.Metadata.Get(MetadataEventType))

		event, err := DecodeMessage(msg)
		require.NoError(err)

		assert.Equal(Event{
			Type:              TypeTake,
			ActivityId:        "f1",
			TransitionName:    "f1",
			ProcessInstanceId: "pi-1",
			Time:              now,
		}, event)
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}

func TestWatermillPublisherTopic(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	publisher := NewWatermillPublisher(pubSub, "orders")
	assert.Equal(t, "orders", publisher.Topic())
}
