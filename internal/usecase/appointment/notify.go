package appointment

import (
	"context"
	"log/slog"

	"github.com/Hbollas/LashTechBooking/internal/notify"
)

// deliver hands msg to n. Failures are logged and never returned: a state
// change that has been committed stays committed.
func deliver(ctx context.Context, n notify.Notifier, log *slog.Logger, msg notify.Message) {
	if n == nil || msg.To == "" {
		return
	}
	if err := n.Notify(ctx, msg.To, msg.Subject, msg.Body); err != nil {
		log.WarnContext(ctx, "customer notification failed",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.Any("err", err),
		)
	}
}
