package error_notificator

import (
	"context"

	"github.com/Vovarama1992/go-utils/logger"
)

// LogInfra records alerts in the service log. It is always on, Telegram
// is added when configured.
type LogInfra struct {
	log *logger.ZapLogger
}

func NewLogInfra(log *logger.ZapLogger) *LogInfra {
	return &LogInfra{log: log}
}

func (i *LogInfra) Notify(_ context.Context, err error, details string) error {
	i.log.Log(logger.LogEntry{
		Level:   "error",
		Message: "[error_notificator] " + details,
		Service: "lecture-notes",
		Error:   err,
	})
	return nil
}
