package chat

import (
	"time"

	"github.com/google/uuid"
)

// Role tags who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleNotice    Role = "system-notice"
)

// Message is one exchange unit in a session's conversation. Immutable once
// appended. ChartSVG holds a self-contained vector-graphics document as text,
// or nil when the exchange produced no chart.
type Message struct {
	ID        string
	Role      Role
	Text      string
	ChartSVG  *string
	CreatedAt time.Time
}

func newMessage(role Role, text string, chart *string, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		ChartSVG:  chart,
		CreatedAt: at,
	}
}
