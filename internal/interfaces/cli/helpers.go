package cli

import (
	"context"

	"github.com/wishwell/wishwell/internal/application/reminder"
	"github.com/wishwell/wishwell/internal/infrastructure/database/mongo"
	"github.com/wishwell/wishwell/internal/infrastructure/monitoring/logging"
)

func mongoStores(db *mongo.Client) *mongo.Stores {
	return mongo.NewStores(db)
}

// logSender satisfies the delivery port for dry runs.
type logSender struct {
	logger logging.Logger
}

func (s logSender) Send(_ context.Context, token string, n reminder.Notification) error {
	s.logger.Info("dry-run reminder",
		logging.String("token", token),
		logging.String("title", n.Title),
		logging.String("body", n.Body))
	return nil
}
