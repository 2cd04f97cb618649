package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campushub/submission-service/internal/models"
	"github.com/campushub/submission-service/internal/service/integration"
)

// publishTransition emits the derived notification events. Publish failures
// are logged and swallowed: notification delivery never fails a request. A
// nil publisher is tolerated for local development without a broker.
func publishTransition(ctx context.Context, publisher integration.NotificationPublisher, logger zerolog.Logger, t models.SubmissionTransition) {
	if publisher == nil {
		return
	}

	for _, event := range DeriveNotifications(t) {
		event := event
		if err := publisher.PublishNotification(ctx, &event); err != nil {
			logger.Error().Err(err).
				Str("kind", event.Kind).
				Str("recipient_id", event.RecipientID).
				Msg("Failed to publish notification event")
		}
	}
}
