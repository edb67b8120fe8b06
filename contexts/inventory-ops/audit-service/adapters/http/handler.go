package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"stockroom/contexts/inventory-ops/audit-service/application"
	"stockroom/contexts/inventory-ops/audit-service/ports"
	httptransport "stockroom/contexts/inventory-ops/audit-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListEventLogsHandler(ctx context.Context) ([]httptransport.EventLogDTO, error) {
	items, err := h.Service.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]httptransport.EventLogDTO, 0, len(items))
	for _, item := range items {
		data = append(data, toEventLogDTO(item))
	}
	return data, nil
}

func toEventLogDTO(item ports.EventLog) httptransport.EventLogDTO {
	return httptransport.EventLogDTO{
		ID:          item.EventID,
		EventType:   item.EventType,
		Timestamp:   item.Timestamp.UTC().Format(time.RFC3339Nano),
		User:        item.User,
		ProductID:   item.ProductID,
		Data:        item.Data,
		Description: item.Description,
	}
}
