package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-asset/internal/activity"
	"go-asset/internal/domain"
	"go-asset/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// envelope decodes both asset and scrap request events.
type envelope struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	AssetID        string    `json:"asset_id"`
	AssetName      string    `json:"asset_name"`
	ActorID        string    `json:"actor_id"`
	ScrapRequestID string    `json:"scrap_request_id"`
	LevelNumber    int       `json:"level_number"`
	Comments       string    `json:"comments"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// ConsumeActivityFeed projects asset and scrap request events into the activity feed.
func ConsumeActivityFeed(
	ctx context.Context,
	reader MessageReader,
	activityService activity.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.activity_feed")
	log.Info("activity feed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("activity feed consumer stopped")
				return
			}
			log.Error("fetch activity message failed", zap.Error(err))
			continue
		}

		var ev envelope
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.Error("decode activity event failed", zap.String("topic", msg.Topic), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		in, ok := toActivity(ev)
		if !ok {
			log.Debug("event has no activity projection", zap.String("event_type", ev.EventType))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// group offsets are cumulative, so the next message may only be fetched once this one is stored
		if !recordWithRetry(ctx, activityService, in, log.With(
			zap.String("event_id", ev.EventID),
			zap.String("event_type", ev.EventType),
		)) {
			log.Info("activity feed consumer stopped")
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit activity message failed", zap.Error(err))
			continue
		}

		log.Info("activity recorded",
			zap.String("event_id", ev.EventID),
			zap.String("action", in.Action),
		)
	}
}

// retryDelay backs off exponentially from 500ms up to 30s.
var retryDelay = func(attempt int) time.Duration {
	d := 500 * time.Millisecond << min(attempt, 6)
	return min(d, 30*time.Second)
}

// recordWithRetry returns false only when ctx is cancelled before the record is stored.
// Record is idempotent on event id, so repeating it is safe.
func recordWithRetry(ctx context.Context, activityService activity.Service, in activity.RecordInput, log *zap.Logger) bool {
	for attempt := 0; ; attempt++ {
		err := activityService.Record(ctx, in)
		if err == nil {
			return true
		}
		log.Error("record activity failed", zap.Int("attempt", attempt+1), zap.Error(err))

		select {
		case <-ctx.Done():
			return false
		case <-time.After(retryDelay(attempt)):
		}
	}
}

func toActivity(ev envelope) (activity.RecordInput, bool) {
	in := activity.RecordInput{
		EventID:    ev.EventID,
		UserID:     ev.ActorID,
		AssetID:    ev.AssetID,
		OccurredAt: ev.OccurredAt,
	}

	switch ev.EventType {
	case events.AssetCreated:
		in.Action = domain.ActivityAssetCreated
		in.Details = fmt.Sprintf("Asset %s created", ev.AssetName)
	case events.AssetUpdated:
		in.Action = domain.ActivityAssetUpdated
		in.Details = fmt.Sprintf("Asset %s updated", ev.AssetName)
	case events.AssetDeleted:
		in.Action = domain.ActivityAssetDeleted
		in.Details = fmt.Sprintf("Asset %s deleted", ev.AssetName)
	case events.ScrapRequested:
		in.Action = domain.ActivityScrapRequested
		in.Details = "Scrap request submitted"
	case events.ScrapAdvanced:
		in.Action = domain.ActivityScrapAdvanced
		in.Details = fmt.Sprintf("Scrap request moved to level %d", ev.LevelNumber)
	case events.ScrapApproved:
		in.Action = domain.ActivityScrapApproved
		in.Details = "Scrap request approved, asset scrapped"
	case events.ScrapRejected:
		in.Action = domain.ActivityScrapRejected
		in.Details = fmt.Sprintf("Scrap request rejected at level %d", ev.LevelNumber)
	default:
		return activity.RecordInput{}, false
	}

	if ev.Comments != "" {
		in.Details += ": " + ev.Comments
	}
	return in, true
}
