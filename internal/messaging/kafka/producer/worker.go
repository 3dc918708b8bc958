package producer

import (
	"context"
	"errors"
	"time"

	"go-asset/internal/messaging/kafka"
	"go-asset/internal/metrics"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const batchSize = 50

// ProcessOutboxEvents relays pending outbox rows to Kafka until ctx is cancelled.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			// drain the backlog before sleeping again
			for {
				sent, err := processPendingEvents(ctx, repo, writer, log)
				if err != nil {
					log.Error("process outbox events failed", zap.Error(err))
					break
				}
				if sent < batchSize || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

// processPendingEvents publishes one batch and returns how many events were sent.
func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (int, error) {
	pending, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	logger.Debug("processing pending outbox events", zap.Int("count", len(pending)))

	msgs := make([]kafkago.Message, len(pending))
	for i, event := range pending {
		msgs[i] = toMessage(event)
	}

	writeErr := writer.WriteMessages(ctx, msgs...)
	var perMessage kafkago.WriteErrors
	hasPerMessage := errors.As(writeErr, &perMessage) && len(perMessage) == len(pending)

	sent, failed := 0, 0
	for i, event := range pending {
		eventErr := writeErr
		if hasPerMessage {
			eventErr = perMessage[i]
		}

		if eventErr != nil {
			failed++
			logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(eventErr),
			)
			if event.RetryCount+1 >= kafka.MaxOutboxAttempts {
				logger.Warn("outbox event moved to dead letter", zap.String("outbox_id", event.ID))
			}
			if markErr := repo.MarkFailed(ctx, event.ID, eventErr.Error()); markErr != nil {
				logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		sent++

		logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	metrics.RecordOutboxRelay(sent, failed)
	return sent, nil
}
