// FILE: test/integration/nats_integration_test.go
// PURPOSE: Round-trip smoke test for the JetStream event bus.
// NOTE: The EVENTS stream is a work queue, so each subject belongs to one
//       consumer. Run this against a dedicated dev server (nats-server -js),
//       not one already serving the notification worker.

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"topicmatch-be/pkg/events"
	"topicmatch-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestNatsEventRoundTrip(t *testing.T) {
	_ = godotenv.Load("../../.env")

	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("Skipping integration test: NATS_URL not set")
	}

	pub, err := nats.NewPublisher(url)
	if err != nil {
		t.Fatalf("Failed to connect publisher: %v", err)
	}
	defer pub.Close()

	sub, err := nats.NewSubscriber(url)
	if err != nil {
		t.Fatalf("Failed to connect subscriber: %v", err)
	}
	defer sub.Close()

	received := make(chan events.Event, 16)
	err = sub.Subscribe("events.TEST_EVENT", "integration-test-worker", func(ctx context.Context, event events.Event) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	// The marker ties the delivery back to this exact run, in case the
	// stream still holds messages from an earlier one.
	marker := uuid.New().String()
	event := events.BaseEvent{
		Type:       "TEST_EVENT",
		Data:       map[string]interface{}{"marker": marker},
		OccurredAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pub.Publish(ctx, event); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	for {
		select {
		case got := <-received:
			if got.Payload()["marker"] != marker {
				continue // leftover from an earlier run, keep waiting
			}
			assert.Equal(t, "TEST_EVENT", got.EventType())
			t.Logf("Round-tripped event with marker %s", marker)
			return
		case <-time.After(10 * time.Second):
			t.Fatal("Timed out waiting for event delivery")
		}
	}
}
