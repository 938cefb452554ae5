// Package notify implementa el Notifier del recordatorio diario sobre el log
// estructurado. No hay infraestructura push del lado del servidor; el canal
// real de entrega queda fuera del alcance de esta API.
package notify

import (
	"context"

	"github.com/biztrack/biztrack-api/internal/application/reminder"
	"github.com/biztrack/biztrack-api/pkg/logger"
)

var _ reminder.Notifier = (*LogNotifier)(nil)

// LogNotifier escribe las notificaciones como eventos de log.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify registra la notificación.
func (n *LogNotifier) Notify(_ context.Context, title, body string) error {
	n.log.Info().Str("title", title).Str("body", body).Msg("recordatorio diario")
	return nil
}
