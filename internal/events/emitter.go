package events

import (
	"context"
	"time"

	"github.com/seafuel/service-voyage/internal/platform/kafka"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// Emitter wraps events in CloudEvents envelopes and publishes them to one topic.
// Failures are logged and never returned to callers.
type Emitter struct {
	publisher kafka.Publisher
	topic     string
	logger    *zap.Logger
}

// NewEmitter creates an Emitter writing to topic.
func NewEmitter(publisher kafka.Publisher, topic string, logger *zap.Logger) *Emitter {
	return &Emitter{publisher: publisher, topic: topic, logger: logger}
}

// Emit publishes data as an event of the given type.
func (e *Emitter) Emit(ctx context.Context, eventType string, data interface{}) {
	if e == nil || e.publisher == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent(Source, eventType, data)
	if err != nil {
		e.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	// The request may finish before the broker answers.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := e.publisher.PublishEvent(ctx, e.topic, cloudEvent); err != nil {
		e.logger.Error("failed to publish event",
			zap.String("topic", e.topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
