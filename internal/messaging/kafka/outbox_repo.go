package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-asset/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	// OutboxStatusDead rows exhausted MaxOutboxAttempts and are no longer relayed.
	OutboxStatusDead = "dead"
)

const MaxOutboxAttempts = 10

const (
	AggregateAsset        = "asset"
	AggregateScrapRequest = "scrap_request"
	AggregateDepreciation = "depreciation"
)

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// outboxRecord is the insert shape; retry bookkeeping columns keep their defaults.
type outboxRecord struct {
	ID            string  `gorm:"column:id;primaryKey"`
	RequestID     *string `gorm:"column:request_id"`
	AggregateType string  `gorm:"column:aggregate_type"`
	AggregateID   string  `gorm:"column:aggregate_id"`
	EventType     string  `gorm:"column:event_type"`
	Topic         string  `gorm:"column:topic"`
	Payload       []byte  `gorm:"column:payload"`
	Status        string  `gorm:"column:status"`
}

func (outboxRecord) TableName() string {
	return "outbox_events"
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	// ListPending returns pending rows and failed rows whose backoff has elapsed, oldest first.
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: database.BindTx(r.db, tx)}
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}

	rec := outboxRecord{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Topic:         event.Topic,
		Payload:       event.Payload,
		Status:        event.Status,
	}
	if event.RequestID != "" {
		rec.RequestID = &event.RequestID
	}
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	var rows []struct {
		ID            string
		RequestID     string
		AggregateType string
		AggregateID   string
		EventType     string
		Topic         string
		Payload       []byte
		Status        string
		RetryCount    int
		NextRetryAt   time.Time
	}

	err := r.db.WithContext(ctx).
		Table("outbox_events").
		Select(`id::text AS id, COALESCE(request_id, '') AS request_id, aggregate_type,
			aggregate_id::text AS aggregate_id, event_type, topic, payload, status, retry_count,
			COALESCE(next_retry_at, created_at) AS next_retry_at`).
		Where("status IN ?", []string{OutboxStatusPending, OutboxStatusFailed}).
		Where("next_retry_at IS NULL OR next_retry_at <= NOW()").
		Order("created_at ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	events := make([]OutboxEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, OutboxEvent(row))
	}
	return events, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Table("outbox_events").
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        OutboxStatusSent,
			"processed_at":  gorm.Expr("NOW()"),
			"error_message": nil,
			"updated_at":    gorm.Expr("NOW()"),
		}).Error
}

// MarkFailed backs off linearly (15s per attempt) and gives up after MaxOutboxAttempts.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return r.db.WithContext(ctx).
		Table("outbox_events").
		Where("id = ?", id).
		Updates(map[string]any{
			"status": gorm.Expr("CASE WHEN retry_count + 1 >= ? THEN ? ELSE ? END",
				MaxOutboxAttempts, OutboxStatusDead, OutboxStatusFailed),
			"retry_count":   gorm.Expr("retry_count + 1"),
			"error_message": gorm.Expr("LEFT(?, 500)", reason),
			"next_retry_at": gorm.Expr("NOW() + ((retry_count + 1) * INTERVAL '15 seconds')"),
			"updated_at":    gorm.Expr("NOW()"),
		}).Error
}

// NewOutboxEvent marshals payload into a pending outbox row.
func NewOutboxEvent(requestID, aggregateType, aggregateID, eventType, topic string, payload any) (OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	}, nil
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.AggregateID == "" {
		return errors.New("outbox aggregate id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if !json.Valid(event.Payload) {
		return errors.New("outbox payload must be valid json")
	}
	if event.Status != OutboxStatusPending {
		return fmt.Errorf("new outbox rows must be %s, got %q", OutboxStatusPending, event.Status)
	}
	return nil
}
