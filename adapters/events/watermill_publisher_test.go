package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillPublisher_PublishUserRegistered(t *testing.T) {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubsub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := pubsub.Subscribe(ctx, TopicUserRegistered)
	require.NoError(t, err)

	pub := NewWatermillPublisher(pubsub)
	require.NoError(t, pub.PublishUserRegistered(ctx, 7, "ada@x.com"))

	select {
	case msg := <-msgs:
		var event UserEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, int64(7), event.UserID)
		assert.Equal(t, "ada@x.com", event.Email)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestWatermillPublisher_PublishExpenseCreated(t *testing.T) {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubsub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := pubsub.Subscribe(ctx, TopicExpenseCreated)
	require.NoError(t, err)

	pub := NewWatermillPublisher(pubsub)
	require.NoError(t, pub.PublishExpenseCreated(ctx, 3, 7))

	select {
	case msg := <-msgs:
		var event ExpenseEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, int64(3), event.ExpenseID)
		assert.Equal(t, int64(7), event.UserID)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}
