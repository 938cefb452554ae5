package dto

import "time"

// SetupBusinessRequest entrada para crear la identidad del negocio.
type SetupBusinessRequest struct {
	Name    string  `json:"name"`
	LogoURI *string `json:"logo_uri"`
}

// UpdateBusinessRequest entrada para actualizar nombre/logo.
type UpdateBusinessRequest struct {
	Name    string  `json:"name"`
	LogoURI *string `json:"logo_uri"`
}

// BusinessResponse representación HTTP del negocio. Nunca expone el hash de
// contraseña ni la respuesta de seguridad.
type BusinessResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	LogoURI          *string   `json:"logo_uri,omitempty"`
	HasPassword      bool      `json:"has_password"`
	ResetEmail       *string   `json:"reset_email,omitempty"`
	SecurityQuestion *string   `json:"security_question,omitempty"`
	ReminderTime     string    `json:"reminder_time"`
	CreatedAt        time.Time `json:"created_at"`
}

// UnlockRequest entrada de la pantalla de bloqueo.
type UnlockRequest struct {
	Password string `json:"password"`
}

// UnlockResponse token de sesión tras desbloquear.
type UnlockResponse struct {
	Token string `json:"token"`
}

// SetPasswordRequest entrada para fijar o quitar la contraseña de bloqueo.
// Password nil o vacío desactiva la pantalla de bloqueo.
type SetPasswordRequest struct {
	Password *string `json:"password"`
}

// SecurityQARequest entrada para fijar pregunta y respuesta de seguridad.
type SecurityQARequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

// ResetPasswordRequest recuperación: responde la pregunta de seguridad y fija
// una contraseña nueva.
type ResetPasswordRequest struct {
	Answer      string `json:"answer"`
	NewPassword string `json:"new_password"`
}

// ResetEmailRequest entrada para fijar el email de recuperación.
type ResetEmailRequest struct {
	Email *string `json:"email"`
}

// ReminderTimeRequest entrada para la hora del recordatorio diario ("HH:MM").
type ReminderTimeRequest struct {
	Time string `json:"time"`
}
