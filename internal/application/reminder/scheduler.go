// Package reminder programa el recordatorio diario del negocio: una vez al
// día, a la hora configurada ("HH:MM"), compone un resumen con la ganancia de
// hoy y lo entrega al Notifier. La hora se relee del negocio antes de cada
// disparo, así los cambios de configuración aplican sin reiniciar.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/biztrack/biztrack-api/internal/application/usecase"
	"github.com/biztrack/biztrack-api/internal/domain/entity"
	"github.com/biztrack/biztrack-api/internal/domain/repository"
	"github.com/biztrack/biztrack-api/pkg/logger"
	"github.com/biztrack/biztrack-api/pkg/moneyfmt"
)

// Notifier entrega una notificación al canal que corresponda (log, push, ...).
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Scheduler dispara el recordatorio diario.
type Scheduler struct {
	businessRepo repository.BusinessRepository
	analyticsUC  *usecase.AnalyticsUseCase
	notifier     Notifier
	log          *logger.Logger
	now          func() time.Time
}

// NewScheduler construye el scheduler.
func NewScheduler(businessRepo repository.BusinessRepository, analyticsUC *usecase.AnalyticsUseCase, notifier Notifier, log *logger.Logger) *Scheduler {
	return &Scheduler{
		businessRepo: businessRepo,
		analyticsUC:  analyticsUC,
		notifier:     notifier,
		log:          log,
		now:          time.Now,
	}
}

// Start corre el loop del recordatorio hasta que ctx se cancele.
// Pensado para lanzarse como goroutine desde main.
func (s *Scheduler) Start(ctx context.Context) {
	for {
		wait := s.untilNextFire()
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			s.fire(ctx)
		}
	}
}

// untilNextFire calcula cuánto falta para el próximo disparo. Si no hay
// negocio configurado todavía, reintenta en una hora.
func (s *Scheduler) untilNextFire() time.Duration {
	reminderTime := entity.DefaultReminderTime
	b, err := s.businessRepo.Get()
	if err != nil || b == nil {
		return time.Hour
	}
	if b.ReminderTime != "" {
		reminderTime = b.ReminderTime
	}

	var hour, minute int
	if _, err := fmt.Sscanf(reminderTime, "%d:%d", &hour, &minute); err != nil {
		hour, minute = 20, 0
	}

	now := s.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (s *Scheduler) fire(ctx context.Context) {
	body := "Update your products and record today's sales."
	if metrics, err := s.analyticsUC.ProfitMetrics(ctx); err == nil {
		body = fmt.Sprintf("Update your products and record today's sales. Profit so far today: %s.",
			moneyfmt.Comma(metrics.Daily))
	}
	if err := s.notifier.Notify(ctx, "Time to Track Your Business!", body); err != nil {
		s.log.Error().Err(err).Msg("entregar recordatorio diario")
	}
}
