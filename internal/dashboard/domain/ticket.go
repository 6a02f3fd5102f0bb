package domain

// Ticket statuses shared by contact messages and guide reports
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

// IsValidTicketStatus проверяет статус обращения/жалобы
func IsValidTicketStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	default:
		return false
	}
}

// ContactMessage — сообщение из формы обратной связи
type ContactMessage struct {
	ID        ID     `json:"id"`
	FullName  string `json:"fullname"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type ReportMetadata struct {
	ReportedAt string `json:"reportedAt"`
}

// GuideReport — жалоба пользователя на гида
type GuideReport struct {
	ID          ID             `json:"id"`
	Reason      string         `json:"reason"`
	Description string         `json:"description"`
	UserID      ID             `json:"userId"`
	GuideID     ID             `json:"guideId"`
	Status      string         `json:"status"`
	Metadata    ReportMetadata `json:"metadata"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
	Guide       BookingParty   `json:"guide"`
	User        BookingParty   `json:"user"`
}
