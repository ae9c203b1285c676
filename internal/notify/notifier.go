package notify

import (
	"context"
	"log/slog"
)

// Notifier delivers a plain-text message to one recipient.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, recipient, subject, body string) error

func (f NotifierFunc) Notify(ctx context.Context, recipient, subject, body string) error {
	return f(ctx, recipient, subject, body)
}

// LogNotifier writes messages to the log instead of sending them. It is used
// when no SMTP host is configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log.With(slog.String("component", "notify"))}
}

func (n *LogNotifier) Notify(ctx context.Context, recipient, subject, body string) error {
	n.log.InfoContext(ctx, "email (not sent, smtp disabled)",
		slog.String("to", recipient),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
