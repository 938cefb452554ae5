// Package auth implementa la identidad del negocio y la pantalla de bloqueo
// local: contraseña con bcrypt, recuperación por pregunta de seguridad y
// sesión vía JWT. Es un colaborador de frontera del libro de inventario; no
// participa en el costeo.
package auth

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/biztrack/biztrack-api/internal/application/dto"
	"github.com/biztrack/biztrack-api/internal/domain"
	"github.com/biztrack/biztrack-api/internal/domain/entity"
	"github.com/biztrack/biztrack-api/internal/domain/repository"
	"github.com/biztrack/biztrack-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

var reminderTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// BusinessUseCase casos de uso de la identidad del negocio (fila única).
type BusinessUseCase struct {
	businessRepo repository.BusinessRepository
	jwtCfg       JWTConfig
}

// NewBusinessUseCase construye el caso de uso.
func NewBusinessUseCase(businessRepo repository.BusinessRepository, jwtCfg JWTConfig) *BusinessUseCase {
	return &BusinessUseCase{businessRepo: businessRepo, jwtCfg: jwtCfg}
}

// Setup crea la identidad del negocio. ErrConflict si ya existe una.
func (uc *BusinessUseCase) Setup(in dto.SetupBusinessRequest) (*dto.BusinessResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.businessRepo.Get()
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	b := &entity.Business{
		ID:           uuid.New().String(),
		Name:         name,
		LogoURI:      in.LogoURI,
		ReminderTime: entity.DefaultReminderTime,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.businessRepo.Create(b); err != nil {
		return nil, err
	}
	return toBusinessResponse(b), nil
}

// Get devuelve el negocio; ErrNotFound si aún no hay uno creado.
func (uc *BusinessUseCase) Get() (*dto.BusinessResponse, error) {
	b, err := uc.get()
	if err != nil {
		return nil, err
	}
	return toBusinessResponse(b), nil
}

// UpdateInfo actualiza nombre y logo.
func (uc *BusinessUseCase) UpdateInfo(in dto.UpdateBusinessRequest) (*dto.BusinessResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.get()
	if err != nil {
		return nil, err
	}
	b.Name = name
	b.LogoURI = in.LogoURI
	if err := uc.businessRepo.Update(b); err != nil {
		return nil, err
	}
	return toBusinessResponse(b), nil
}

// SetPassword fija la contraseña de bloqueo (bcrypt) o la desactiva si
// password es nil/vacía.
func (uc *BusinessUseCase) SetPassword(in dto.SetPasswordRequest) error {
	b, err := uc.get()
	if err != nil {
		return err
	}
	var hash *string
	if in.Password != nil && *in.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		s := string(h)
		hash = &s
	}
	return uc.businessRepo.SetPasswordHash(b.ID, hash)
}

// Unlock verifica la contraseña de bloqueo y devuelve un token de sesión.
// Si el negocio no tiene contraseña configurada, el token se emite directo.
func (uc *BusinessUseCase) Unlock(in dto.UnlockRequest) (*dto.UnlockResponse, error) {
	b, err := uc.get()
	if err != nil {
		return nil, err
	}
	if b.PasswordHash != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(*b.PasswordHash), []byte(in.Password)); err != nil {
			return nil, domain.ErrUnauthorized
		}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, b.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.UnlockResponse{Token: token}, nil
}

// SetSecurityQA fija la pregunta y respuesta de seguridad. La respuesta se
// normaliza antes de guardarse para que la comparación sea tolerante a
// mayúsculas y espacios.
func (uc *BusinessUseCase) SetSecurityQA(in dto.SecurityQARequest) error {
	b, err := uc.get()
	if err != nil {
		return err
	}
	var question, answer *string
	if in.Question != nil && strings.TrimSpace(*in.Question) != "" {
		q := strings.TrimSpace(*in.Question)
		question = &q
	}
	if in.Answer != nil {
		if norm := NormalizeAnswer(*in.Answer); norm != "" {
			answer = &norm
		}
	}
	return uc.businessRepo.SetSecurityQA(b.ID, question, answer)
}

// VerifySecurityAnswer compara la respuesta normalizada con la guardada.
// ErrUnauthorized si no coincide o si no hay pregunta configurada.
func (uc *BusinessUseCase) VerifySecurityAnswer(answer string) error {
	b, err := uc.get()
	if err != nil {
		return err
	}
	if b.SecurityAnswer == nil || *b.SecurityAnswer == "" {
		return domain.ErrUnauthorized
	}
	if NormalizeAnswer(answer) != *b.SecurityAnswer {
		return domain.ErrUnauthorized
	}
	return nil
}

// ResetPassword recupera el acceso: valida la respuesta de seguridad y fija
// la contraseña nueva.
func (uc *BusinessUseCase) ResetPassword(in dto.ResetPasswordRequest) error {
	if in.NewPassword == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.VerifySecurityAnswer(in.Answer); err != nil {
		return err
	}
	return uc.SetPassword(dto.SetPasswordRequest{Password: &in.NewPassword})
}

// SetResetEmail fija (o limpia) el email de recuperación.
func (uc *BusinessUseCase) SetResetEmail(in dto.ResetEmailRequest) error {
	b, err := uc.get()
	if err != nil {
		return err
	}
	var email *string
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		e := strings.TrimSpace(*in.Email)
		email = &e
	}
	return uc.businessRepo.SetResetEmail(b.ID, email)
}

// SetReminderTime fija la hora del recordatorio diario ("HH:MM").
func (uc *BusinessUseCase) SetReminderTime(in dto.ReminderTimeRequest) error {
	if !reminderTimeRe.MatchString(in.Time) {
		return domain.ErrInvalidInput
	}
	b, err := uc.get()
	if err != nil {
		return err
	}
	return uc.businessRepo.SetReminderTime(b.ID, in.Time)
}

func (uc *BusinessUseCase) get() (*entity.Business, error) {
	b, err := uc.businessRepo.Get()
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// NormalizeAnswer normaliza una respuesta de seguridad: trim, minúsculas y
// sin espacios internos, igual que al guardarla.
func NormalizeAnswer(answer string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(answer))), "")
}

func toBusinessResponse(b *entity.Business) *dto.BusinessResponse {
	return &dto.BusinessResponse{
		ID:               b.ID,
		Name:             b.Name,
		LogoURI:          b.LogoURI,
		HasPassword:      b.PasswordHash != nil,
		ResetEmail:       b.ResetEmail,
		SecurityQuestion: b.SecurityQuestion,
		ReminderTime:     b.ReminderTime,
		CreatedAt:        b.CreatedAt,
	}
}
