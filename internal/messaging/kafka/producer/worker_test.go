package producer

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-asset/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeOutboxRepo struct {
	pending []kafka.OutboxEvent
	sent    []string
	failed  map[string]string
}

func (f *fakeOutboxRepo) WithTx(*sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(context.Context, kafka.OutboxEvent) error {
	return nil
}
func (f *fakeOutboxRepo) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	return f.pending, nil
}
func (f *fakeOutboxRepo) MarkSent(_ context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeOutboxRepo) MarkFailed(_ context.Context, id, reason string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = reason
	return nil
}

// fakeWriter fails every message addressed to failTopic, or the whole batch when batchErr is set.
type fakeWriter struct {
	failTopic string
	batchErr  error
	written   []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.batchErr != nil {
		return w.batchErr
	}

	errs := make(kafkago.WriteErrors, len(msgs))
	failed := false
	for i, m := range msgs {
		if m.Topic == w.failTopic {
			errs[i] = errors.New("broker unavailable")
			failed = true
			continue
		}
		w.written = append(w.written, m)
	}
	if failed {
		return errs
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{
		{ID: "e1", RequestID: "req-1", AggregateID: "a1", EventType: "scrap_requested", Topic: "ok", Payload: []byte(`{}`)},
		{ID: "e2", AggregateID: "a2", EventType: "asset_created", Topic: "down", Payload: []byte(`{}`)},
	}}
	writer := &fakeWriter{failTopic: "down"}

	sent, err := processPendingEvents(context.Background(), repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"e1"}, repo.sent)
	assert.Equal(t, "broker unavailable", repo.failed["e2"])

	assert.Len(t, writer.written, 1)
	msg := writer.written[0]
	assert.Equal(t, []byte("a1"), msg.Key)
	assert.Len(t, msg.Headers, 3)
	assert.Equal(t, "request_id", msg.Headers[2].Key)
}

func TestProcessPendingEventsWholeBatchFails(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{
		{ID: "e1", AggregateID: "a1", Topic: "ok", Payload: []byte(`{}`)},
		{ID: "e2", AggregateID: "a2", Topic: "ok", Payload: []byte(`{}`)},
	}}
	writer := &fakeWriter{batchErr: errors.New("leader not available")}

	sent, err := processPendingEvents(context.Background(), repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, repo.sent)
	assert.Equal(t, "leader not available", repo.failed["e1"])
	assert.Equal(t, "leader not available", repo.failed["e2"])
}

func TestProcessPendingEventsEmpty(t *testing.T) {
	sent, err := processPendingEvents(context.Background(), &fakeOutboxRepo{}, &fakeWriter{}, zap.NewNop())
	assert.NoError(t, err)
	assert.Zero(t, sent)
}
