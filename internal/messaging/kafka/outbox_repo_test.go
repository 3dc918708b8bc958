package kafka

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, OutboxRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock, NewOutboxRepository(gdb)
}

func TestNewOutboxEvent(t *testing.T) {
	ev, err := NewOutboxEvent("req-1", AggregateAsset, "asset-1", "asset_created", "topic", map[string]string{"asset_id": "asset-1"})

	assert.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, OutboxStatusPending, ev.Status)
	assert.JSONEq(t, `{"asset_id":"asset-1"}`, string(ev.Payload))
	assert.NoError(t, ValidateOutboxEvent(ev))
}

func TestValidateOutboxEvent(t *testing.T) {
	valid, _ := NewOutboxEvent("", AggregateAsset, "a1", "asset_created", "topic", map[string]string{})

	cases := map[string]func(e *OutboxEvent){
		"missing id":        func(e *OutboxEvent) { e.ID = "" },
		"missing aggregate": func(e *OutboxEvent) { e.AggregateID = "" },
		"missing topic":     func(e *OutboxEvent) { e.Topic = "" },
		"bad payload":       func(e *OutboxEvent) { e.Payload = []byte("{") },
		"not pending":       func(e *OutboxEvent) { e.Status = OutboxStatusSent },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			ev := valid
			mutate(&ev)
			assert.Error(t, ValidateOutboxEvent(ev))
		})
	}
}

func TestOutboxRepository_CreateUsesTx(t *testing.T) {
	db, mock, repo := newTestRepo(t)

	ev, _ := NewOutboxEvent("", AggregateScrapRequest, "sr-1", "scrap_requested", "topic", map[string]string{})

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "outbox_events"`).
		WithArgs(ev.ID, nil, ev.AggregateType, ev.AggregateID, ev.EventType, ev.Topic, ev.Payload, ev.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	assert.NoError(t, repo.WithTx(tx).Create(context.Background(), ev))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	_, mock, repo := newTestRepo(t)

	err := repo.Create(context.Background(), OutboxEvent{ID: "x"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	_, mock, repo := newTestRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic",
		"payload", "status", "retry_count", "next_retry_at",
	}).AddRow("e1", "req-1", AggregateAsset, "a1", "asset_created", "topic", []byte(`{}`), OutboxStatusFailed, 2, now)

	mock.ExpectQuery(`(?s)SELECT .* FROM "outbox_events" WHERE status IN \(\$1,\$2\)`).
		WillReturnRows(rows)

	events, err := repo.ListPending(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, 2, events[0].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	_, mock, repo := newTestRepo(t)

	mock.ExpectExec(`(?s)UPDATE "outbox_events" SET .*CASE WHEN retry_count \+ 1 >=`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFailed(context.Background(), "e1", "broker unavailable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
