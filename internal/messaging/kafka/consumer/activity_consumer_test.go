package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-asset/internal/activity"
	activityMock "go-asset/internal/activity/mock"
	"go-asset/internal/domain"
	"go-asset/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeReader struct {
	queue     []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.queue) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func message(t *testing.T, payload any) kafkago.Message {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	return kafkago.Message{Topic: events.ScrapRequestTopic, Value: body}
}

func TestConsumeActivityFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := activityMock.NewMockService(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rejected := events.ScrapRequestEvent{
		EventID:        "0b3f3a4e-1111-4c59-9d0e-7d4f7f0b7b10",
		EventType:      events.ScrapRejected,
		ScrapRequestID: "sr-1",
		AssetID:        "0b3f3a4e-2222-4c59-9d0e-7d4f7f0b7b10",
		ActorID:        "0b3f3a4e-3333-4c59-9d0e-7d4f7f0b7b10",
		LevelNumber:    2,
		Status:         domain.ScrapRejected,
		Comments:       "still usable",
		OccurredAt:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	batch := events.DepreciationBatchEvent{EventID: "x", EventType: events.DepreciationBatchCompleted}

	reader := &fakeReader{
		queue: []kafkago.Message{
			{Value: []byte("{not json")},
			message(t, batch),
			message(t, rejected),
		},
		cancel: cancel,
	}

	svc.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in activity.RecordInput) error {
			assert.Equal(t, rejected.EventID, in.EventID)
			assert.Equal(t, domain.ActivityScrapRejected, in.Action)
			assert.Equal(t, rejected.ActorID, in.UserID)
			assert.Equal(t, "Scrap request rejected at level 2: still usable", in.Details)
			return nil
		})

	ConsumeActivityFeed(ctx, reader, svc, zap.NewNop())

	assert.Len(t, reader.committed, 3)
}

func fastRetry(t *testing.T) {
	orig := retryDelay
	retryDelay = func(int) time.Duration { return time.Millisecond }
	t.Cleanup(func() { retryDelay = orig })
}

func TestConsumeActivityFeed_LeavesFailedMessageUncommitted(t *testing.T) {
	fastRetry(t)
	ctrl := gomock.NewController(t)
	svc := activityMock.NewMockService(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		queue: []kafkago.Message{message(t, events.AssetEvent{
			EventID:   "0b3f3a4e-1111-4c59-9d0e-7d4f7f0b7b10",
			EventType: events.AssetCreated,
			AssetName: "Laptop",
		})},
		cancel: cancel,
	}

	calls := 0
	svc.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, activity.RecordInput) error {
			calls++
			if calls == 3 {
				cancel()
			}
			return errors.New("db down")
		}).
		Times(3)

	ConsumeActivityFeed(ctx, reader, svc, zap.NewNop())

	assert.Empty(t, reader.committed)
}

func TestConsumeActivityFeed_RetriesBeforeNextOffset(t *testing.T) {
	fastRetry(t)
	ctrl := gomock.NewController(t)
	svc := activityMock.NewMockService(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := message(t, events.AssetEvent{EventID: "e1", EventType: events.AssetCreated, AssetName: "Laptop"})
	first.Offset = 10
	second := message(t, events.AssetEvent{EventID: "e2", EventType: events.AssetUpdated, AssetName: "Laptop"})
	second.Offset = 11

	reader := &fakeReader{queue: []kafkago.Message{first, second}, cancel: cancel}

	var seen []string
	record := func(in activity.RecordInput) {
		seen = append(seen, in.EventID)
		if in.EventID == "e2" {
			// e1 must be committed before e2 is handed to the projection
			assert.Len(t, reader.committed, 1)
		}
	}
	gomock.InOrder(
		svc.EXPECT().Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in activity.RecordInput) error {
				record(in)
				assert.Empty(t, reader.committed)
				return errors.New("db down")
			}),
		svc.EXPECT().Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in activity.RecordInput) error {
				record(in)
				return nil
			}).
			Times(2),
	)

	ConsumeActivityFeed(ctx, reader, svc, zap.NewNop())

	assert.Equal(t, []string{"e1", "e1", "e2"}, seen)
	if assert.Len(t, reader.committed, 2) {
		assert.Equal(t, int64(10), reader.committed[0].Offset)
		assert.Equal(t, int64(11), reader.committed[1].Offset)
	}
}

func TestToActivity(t *testing.T) {
	in, ok := toActivity(envelope{EventType: events.AssetCreated, AssetName: "Laptop"})
	assert.True(t, ok)
	assert.Equal(t, domain.ActivityAssetCreated, in.Action)
	assert.Equal(t, "Asset Laptop created", in.Details)

	in, ok = toActivity(envelope{EventType: events.ScrapAdvanced, LevelNumber: 3})
	assert.True(t, ok)
	assert.Equal(t, "Scrap request moved to level 3", in.Details)

	_, ok = toActivity(envelope{EventType: "asset_audited"})
	assert.False(t, ok)
}
