package entity

import "time"

// DefaultReminderTime hora por defecto del recordatorio diario ("HH:MM").
const DefaultReminderTime = "20:00"

// Business representa la identidad del negocio (fila única).
// PasswordHash es bcrypt; nil significa pantalla de bloqueo desactivada.
// SecurityAnswer se guarda normalizada (trim, minúsculas, sin espacios).
type Business struct {
	ID               string
	Name             string
	LogoURI          *string
	PasswordHash     *string
	ResetEmail       *string
	SecurityQuestion *string
	SecurityAnswer   *string
	ReminderTime     string // "HH:MM", default 20:00
	CreatedAt        time.Time
}
