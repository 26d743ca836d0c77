package logger

import (
	"log/slog"

	"portfolio_dashboard/internal/app/port"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
)

// slogAdapter реализует интерфейс port.Logger поверх slog-обработчика, пишущего в zap.
type slogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a port.Logger backed by the given zap logger.
func NewSlogAdapter(z *zap.Logger, level slog.Leveler) port.Logger {
	handler := slogzap.Option{
		Level:  level,
		Logger: z,
	}.NewZapHandler()
	return &slogAdapter{logger: slog.New(handler)}
}

// NewNop returns a port.Logger that discards everything.
func NewNop() port.Logger {
	return NewSlogAdapter(zap.NewNop(), slog.LevelError)
}

// Info логирует информационное сообщение.
func (a *slogAdapter) Info(msg string, args ...any) {
	a.logger.Info(msg, args...)
}

// Debug логирует отладочное сообщение.
func (a *slogAdapter) Debug(msg string, args ...any) {
	a.logger.Debug(msg, args...)
}

// Warn логирует предупреждающее сообщение.
func (a *slogAdapter) Warn(msg string, args ...any) {
	a.logger.Warn(msg, args...)
}

// Error логирует сообщение об ошибке.
func (a *slogAdapter) Error(msg string, args ...any) {
	a.logger.Error(msg, args...)
}
