package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/biztrack/biztrack-api/internal/application/auth"
	"github.com/biztrack/biztrack-api/internal/application/dto"
)

// BusinessHandler maneja la identidad del negocio y la pantalla de bloqueo.
// Setup, Get, Unlock y ResetPassword son públicos (pre-desbloqueo); el resto
// requiere sesión.
type BusinessHandler struct {
	uc *auth.BusinessUseCase
}

// NewBusinessHandler construye el handler.
func NewBusinessHandler(uc *auth.BusinessUseCase) *BusinessHandler {
	return &BusinessHandler{uc: uc}
}

// Setup godoc
// @Summary      Crear la identidad del negocio (primera ejecución)
// @Tags         business
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetupBusinessRequest  true  "Datos del negocio"
// @Success      201   {object}  dto.BusinessResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/business [post]
func (h *BusinessHandler) Setup(c *fiber.Ctx) error {
	var in dto.SetupBusinessRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Setup(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener la identidad del negocio (sin datos sensibles)
// @Tags         business
// @Produce      json
// @Success      200  {object}  dto.BusinessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/business [get]
func (h *BusinessHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar nombre y logo del negocio
// @Tags         business
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateBusinessRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.BusinessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/business [put]
func (h *BusinessHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBusinessRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateInfo(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Unlock godoc
// @Summary      Desbloquear la app con la contraseña y obtener token de sesión
// @Tags         business
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UnlockRequest  true  "Contraseña de bloqueo"
// @Success      200   {object}  dto.UnlockResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/business/unlock [post]
func (h *BusinessHandler) Unlock(c *fiber.Ctx) error {
	var in dto.UnlockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Unlock(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetPassword godoc
// @Summary      Fijar o desactivar la contraseña de bloqueo
// @Tags         business
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.SetPasswordRequest  true  "Contraseña (nil/vacía desactiva)"
// @Success      204   "Sin contenido"
// @Router       /api/business/password [put]
func (h *BusinessHandler) SetPassword(c *fiber.Ctx) error {
	var in dto.SetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetPassword(in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetSecurityQA godoc
// @Summary      Fijar pregunta y respuesta de seguridad
// @Tags         business
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.SecurityQARequest  true  "Pregunta y respuesta"
// @Success      204   "Sin contenido"
// @Router       /api/business/security-question [put]
func (h *BusinessHandler) SetSecurityQA(c *fiber.Ctx) error {
	var in dto.SecurityQARequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetSecurityQA(in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResetPassword godoc
// @Summary      Recuperar acceso respondiendo la pregunta de seguridad
// @Tags         business
// @Accept       json
// @Param        body  body  dto.ResetPasswordRequest  true  "Respuesta y contraseña nueva"
// @Success      204   "Sin contenido"
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/business/reset-password [post]
func (h *BusinessHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ResetPassword(in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetResetEmail godoc
// @Summary      Fijar el email de recuperación
// @Tags         business
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ResetEmailRequest  true  "Email (nil limpia)"
// @Success      204   "Sin contenido"
// @Router       /api/business/reset-email [put]
func (h *BusinessHandler) SetResetEmail(c *fiber.Ctx) error {
	var in dto.ResetEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetResetEmail(in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetReminderTime godoc
// @Summary      Fijar la hora del recordatorio diario ("HH:MM")
// @Tags         business
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ReminderTimeRequest  true  "Hora del recordatorio"
// @Success      204   "Sin contenido"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/business/reminder-time [put]
func (h *BusinessHandler) SetReminderTime(c *fiber.Ctx) error {
	var in dto.ReminderTimeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetReminderTime(in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
