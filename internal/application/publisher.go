package application

import (
	"context"
	"time"

	"github.com/wms-platform/outbound-config-service/pkg/cloudevents"
	"github.com/wms-platform/outbound-config-service/pkg/logging"
)

// publishEvent publishes an event and logs the outcome. A nil publisher is a
// no-op so the services work without a broker. Publish failures are logged
// but never fail the use case.
func publishEvent(ctx context.Context, publisher EventPublisher, logger *logging.Logger, topic string, event *cloudevents.WMSCloudEvent) {
	if publisher == nil {
		return
	}

	start := time.Now()
	err := publisher.PublishEvent(ctx, topic, event)
	logger.KafkaPublish(ctx, topic, event.Type, err == nil, time.Since(start))
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("Failed to publish event", "eventType", event.Type)
	}
}
