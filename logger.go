package arcdb

import (
	"log/slog"
	"os"
)

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// prepareConnLogger enriches the base logger with connection-specific
// context so every record carries the conn id and peer address.
func prepareConnLogger(base *slog.Logger, num int, remoteAddr string) *slog.Logger {
	return base.With(
		slog.Int("conn_id", num),
		slog.String("remote_addr", remoteAddr),
		slog.String("protocol", "arcdb"),
	)
}
