package postgresadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"stockroom/contexts/inventory-ops/audit-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&eventLogModel{})
}

func (r *Repository) HasTimestamp(ctx context.Context, timestamp time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&eventLogModel{}).
		Where("timestamp = ?", timestamp.UTC()).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) AppendEvent(ctx context.Context, log ports.EventLog) error {
	payload, err := json.Marshal(log.Data)
	if err != nil {
		return err
	}

	row := eventLogModel{
		EventID:     log.EventID,
		EventType:   log.EventType,
		Timestamp:   log.Timestamp.UTC(),
		Actor:       log.User,
		ProductID:   log.ProductID,
		Data:        string(payload),
		Description: log.Description,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListEvents(ctx context.Context) ([]ports.EventLog, error) {
	var rows []eventLogModel
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.EventLog, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type eventLogModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	EventType   string    `gorm:"column:event_type"`
	Timestamp   time.Time `gorm:"column:timestamp;index"`
	Actor       string    `gorm:"column:actor"`
	ProductID   string    `gorm:"column:product_id"`
	Data        string    `gorm:"column:data"`
	Description string    `gorm:"column:description"`
}

func (eventLogModel) TableName() string {
	return "event_logs"
}

func (m eventLogModel) toEntity() ports.EventLog {
	var data any
	if m.Data != "" {
		_ = json.Unmarshal([]byte(m.Data), &data)
	}
	return ports.EventLog{
		EventID:     m.EventID,
		EventType:   m.EventType,
		Timestamp:   m.Timestamp,
		User:        m.Actor,
		ProductID:   m.ProductID,
		Data:        data,
		Description: m.Description,
	}
}

var _ ports.Repository = (*Repository)(nil)
