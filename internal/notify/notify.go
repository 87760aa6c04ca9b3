package notify

import (
	"context"
	"log/slog"
)

// Message is a guest-facing notification. Channel selection (SMS vs email)
// belongs to the gateway implementation; the booking flow only supplies both
// contact fields it has.
type Message struct {
	Phone   string
	Email   string
	Subject string
	Body    string
}

// Gateway delivers guest notifications. Implementations wrap a hosted
// SMS/email provider; delivery failures are reported but never roll back the
// reservation that triggered them.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}

// LogGateway writes notifications to the log instead of delivering them.
// Development and test default.
type LogGateway struct {
	logger *slog.Logger
}

func NewLogGateway(logger *slog.Logger) *LogGateway {
	return &LogGateway{logger: logger}
}

func (g *LogGateway) Send(ctx context.Context, msg Message) error {
	g.logger.InfoContext(ctx, "notification",
		"phone", msg.Phone,
		"email", msg.Email,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

// Noop discards notifications.
type Noop struct{}

func (Noop) Send(context.Context, Message) error { return nil }
