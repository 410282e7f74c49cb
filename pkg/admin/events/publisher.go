package events

import (
	"context"
	"time"

	"topicmatch-be/internal/pkg/logger"
	pkgEvents "topicmatch-be/pkg/events"
	pktNats "topicmatch-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for admin operations
type Publisher interface {
	PublishPeriodOpened(ctx context.Context, periodId uuid.UUID, name string, closesAt *time.Time)
	PublishPeriodClosed(ctx context.Context, periodId uuid.UUID, name string)
	PublishTopicPublished(ctx context.Context, topicId, periodId uuid.UUID, title string)
	PublishMatchingExported(ctx context.Context, periodId uuid.UUID, name string, teams, agents int)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based event publisher
func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishPeriodOpened emits PERIOD_OPENED when a period starts accepting answers
func (p *NatsPublisher) PublishPeriodOpened(ctx context.Context, periodId uuid.UUID, name string, closesAt *time.Time) {
	if p.publisher == nil {
		return
	}

	data := map[string]interface{}{
		"period_id":   periodId.String(),
		"period_name": name,
		"entity_type": "period",
		"entity_id":   periodId.String(),
	}
	if closesAt != nil {
		data["closes_at"] = closesAt.Format(time.RFC3339)
	}

	evt := pkgEvents.BaseEvent{
		Type:       pkgEvents.TypePeriodOpened,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish PERIOD_OPENED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishPeriodClosed emits PERIOD_CLOSED when a period stops accepting answers
func (p *NatsPublisher) PublishPeriodClosed(ctx context.Context, periodId uuid.UUID, name string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: pkgEvents.TypePeriodClosed,
		Data: map[string]interface{}{
			"period_id":   periodId.String(),
			"period_name": name,
			"entity_type": "period",
			"entity_id":   periodId.String(),
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish PERIOD_CLOSED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishTopicPublished emits TOPIC_PUBLISHED when a topic becomes rankable
func (p *NatsPublisher) PublishTopicPublished(ctx context.Context, topicId, periodId uuid.UUID, title string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: pkgEvents.TypeTopicPublished,
		Data: map[string]interface{}{
			"topic_id":    topicId.String(),
			"period_id":   periodId.String(),
			"title":       title,
			"entity_type": "topic",
			"entity_id":   topicId.String(),
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish TOPIC_PUBLISHED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishMatchingExported emits MATCHING_EXPORTED after a solver input export
func (p *NatsPublisher) PublishMatchingExported(ctx context.Context, periodId uuid.UUID, name string, teams, agents int) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: pkgEvents.TypeMatchingExported,
		Data: map[string]interface{}{
			"period_id":   periodId.String(),
			"period_name": name,
			"teams":       teams,
			"agents":      agents,
			"entity_type": "period",
			"entity_id":   periodId.String(),
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish MATCHING_EXPORTED event", map[string]interface{}{"error": err.Error()})
	}
}
