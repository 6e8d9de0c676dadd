package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"careercompass/internal/logger"
	"careercompass/internal/model"
)

// eventsChannel carries engine signals to external collaborators
// (gamification ledger, reporting, delivery).
const eventsChannel = "engine.events"

// Publisher implements service.Notifier over Redis pub/sub.
// Fire-and-forget: publish failures are logged and dropped, never
// surfaced into engine state.
type Publisher struct {
	client *redis.Client
	log    *logger.Logger
}

// NewPublisher creates an event publisher on the given Redis client.
func NewPublisher(client *redis.Client, log *logger.Logger) *Publisher {
	return &Publisher{client: client, log: log}
}

func (p *Publisher) SectionCompleted(ctx context.Context, session *model.Session, section int) {
	p.publish(ctx, model.Event{
		Type:          model.EventSectionCompleted,
		SessionID:     session.ID,
		ParticipantID: session.ParticipantID,
		Section:       section,
	})
}

func (p *Publisher) SessionCompleted(ctx context.Context, session *model.Session, profile *model.Profile) {
	p.publish(ctx, model.Event{
		Type:          model.EventSessionCompleted,
		SessionID:     session.ID,
		ParticipantID: session.ParticipantID,
		Code:          profile.Code,
	})
}

func (p *Publisher) PatternRecognized(ctx context.Context, session *model.Session, code string) {
	p.publish(ctx, model.Event{
		Type:          model.EventPatternRecognized,
		SessionID:     session.ID,
		ParticipantID: session.ParticipantID,
		Code:          code,
	})
}

func (p *Publisher) publish(ctx context.Context, event model.Event) {
	event.ID = uuid.New().String()
	event.OccurredAt = time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error("event marshal failed", "type", event.Type, "error", err)
		return
	}
	if err := p.client.Publish(ctx, eventsChannel, payload).Err(); err != nil {
		p.log.Warn("event publish failed", "type", event.Type, "sessionId", event.SessionID, "error", err)
	}
}
