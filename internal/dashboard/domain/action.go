package domain

import "time"

// Resources
const (
	ResourceGuide        = "guide"
	ResourceGuideRequest = "guide_request"
	ResourceContact      = "contact"
	ResourceReport       = "report"
)

// AdminAction — событие об успешной мутации, уходит в журнал действий
type AdminAction struct {
	ActorID    string    `json:"actor_id"`
	ActorEmail string    `json:"actor_email"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id"`
	Value      string    `json:"value"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
