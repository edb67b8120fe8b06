package http

type ErrorResponse struct {
	Message string `json:"message"`
}

type EventLogDTO struct {
	ID          string `json:"id"`
	EventType   string `json:"eventType"`
	Timestamp   string `json:"timestamp"`
	User        string `json:"user"`
	ProductID   string `json:"productId"`
	Data        any    `json:"data"`
	Description string `json:"description"`
}
