package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/biztrack/biztrack-api/internal/application/auth"
	"github.com/biztrack/biztrack-api/internal/application/dto"
	"github.com/biztrack/biztrack-api/internal/domain"
	"github.com/biztrack/biztrack-api/internal/domain/entity"
)

// fakeBusinessRepo guarda la fila única del negocio en memoria.
type fakeBusinessRepo struct {
	business *entity.Business
}

func (r *fakeBusinessRepo) Create(b *entity.Business) error {
	if r.business != nil {
		return domain.ErrDuplicate
	}
	cb := *b
	r.business = &cb
	return nil
}

func (r *fakeBusinessRepo) Get() (*entity.Business, error) {
	if r.business == nil {
		return nil, nil
	}
	cb := *r.business
	return &cb, nil
}

func (r *fakeBusinessRepo) GetByID(id string) (*entity.Business, error) {
	if r.business == nil || r.business.ID != id {
		return nil, nil
	}
	cb := *r.business
	return &cb, nil
}

func (r *fakeBusinessRepo) Update(b *entity.Business) error {
	r.business.Name = b.Name
	r.business.LogoURI = b.LogoURI
	return nil
}

func (r *fakeBusinessRepo) SetPasswordHash(_ string, hash *string) error {
	r.business.PasswordHash = hash
	return nil
}

func (r *fakeBusinessRepo) SetResetEmail(_ string, email *string) error {
	r.business.ResetEmail = email
	return nil
}

func (r *fakeBusinessRepo) SetSecurityQA(_ string, question, answer *string) error {
	r.business.SecurityQuestion = question
	r.business.SecurityAnswer = answer
	return nil
}

func (r *fakeBusinessRepo) SetReminderTime(_ string, reminderTime string) error {
	r.business.ReminderTime = reminderTime
	return nil
}

func newTestUseCase() (*auth.BusinessUseCase, *fakeBusinessRepo) {
	repo := &fakeBusinessRepo{}
	uc := auth.NewBusinessUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "biztrack-test",
	})
	return uc, repo
}

func strptr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Setup / Get / UpdateInfo
// ──────────────────────────────────────────────────────────────────────────────

func TestSetup_CreaNegocioConRecordatorioPorDefecto(t *testing.T) {
	uc, repo := newTestUseCase()

	out, err := uc.Setup(dto.SetupBusinessRequest{Name: "  Kiosco Norte  "})
	require.NoError(t, err)

	assert.Equal(t, "Kiosco Norte", out.Name, "el nombre se guarda sin espacios de borde")
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.DefaultReminderTime, out.ReminderTime)
	assert.False(t, out.HasPassword)
	require.NotNil(t, repo.business)
}

func TestSetup_Duplicado_Conflict(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Setup(dto.SetupBusinessRequest{Name: "Uno"})
	require.NoError(t, err)

	_, err = uc.Setup(dto.SetupBusinessRequest{Name: "Dos"})
	assert.ErrorIs(t, err, domain.ErrConflict, "solo puede haber un negocio")
}

func TestSetup_NombreVacio(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Setup(dto.SetupBusinessRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_SinNegocio_NotFound(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Get()
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateInfo_CambiaNombreYLogo(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Setup(dto.SetupBusinessRequest{Name: "Viejo"})
	require.NoError(t, err)

	out, err := uc.UpdateInfo(dto.UpdateBusinessRequest{Name: "Nuevo", LogoURI: strptr("file://logo.png")})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", out.Name)
	require.NotNil(t, out.LogoURI)
	assert.Equal(t, "file://logo.png", *out.LogoURI)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contraseña de bloqueo / Unlock
// ──────────────────────────────────────────────────────────────────────────────

func TestSetPasswordYUnlock_RoundTrip(t *testing.T) {
	uc, repo := newTestUseCase()
	_, err := uc.Setup(dto.SetupBusinessRequest{Name: "Kiosco"})
	require.NoError(t, err)

	require.NoError(t, uc.SetPassword(dto.SetPasswordRequest{Password: strptr("s3creta")}))
	require.NotNil(t, repo.business.PasswordHash)
	assert.NotEqual(t, "s3creta", *repo.business.PasswordHash, "la contraseña nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*repo.business.PasswordHash), []byte("s3creta")))

	out, err := uc.Unlock(dto.UnlockRequest{Password: "s3creta"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestUnlock_ContrasenaIncorrecta(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Setup(dto.SetupBusinessRequest{Name: "Kiosco"})
	require.NoError(t, err)
	require.NoError(t, uc.SetPassword(dto.SetPasswordRequest{Password: strptr("s3creta")}))

	_, err = uc.Unlock(dto.UnlockRequest{Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUnlock_SinContrasenaConfigurada_EmiteToken(t *testing.T) {
	// Pantalla de bloqueo desactivada: el token sale directo.
	uc, _ := newTestUseCase()
	_, err := uc.Setup(dto.SetupBusinessRequest{Name: "Kiosco"})
	require.NoError(t, err)

	out, err := uc.Unlock(dto.UnlockRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestSetPassword_NilDesactivaElBloqueo(t *testing.T) {
	uc, repo := newTestUseCase()
	_, err := uc.Setup(dto.SetupBusinessRequest{Name: "Kiosco"})
	require.NoError(t, err)
	require.NoError(t, uc.SetPassword(dto.SetPasswordRequest{Password: strptr("s3creta")}))

	require.NoError(t, uc.SetPassword(dto.SetPasswordRequest{Password: nil}))
	assert.Nil(t, repo.business.PasswordHash)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pregunta de seguridad / recuperación
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeAnswer(t *testing.T) {
	// Trim, minúsculas, y sin espacios internos: "  Mi  PERRO " == "miperro".
	assert.Equal(t, "miperro", auth.NormalizeAnswer("  Mi  PERRO "))
	assert.Equal(t, "miperro", auth.NormalizeAnswer("mi perro"))
	assert.Equal(t, "", auth.NormalizeAnswer("   "))
}

func TestResetPassword_RespuestaCorrecta(t *testing.T) {
	uc, repo := newTestUseCase()
	_, err := uc.Setup(dto.SetupBusinessRequest{Name: "Kiosco"})
	require.NoError(t, err)
	require.NoError(t, uc.SetPassword(dto.SetPasswordRequest{Password: strptr("vieja")}))
	require.NoError(t, uc.SetSecurityQA(dto.SecurityQARequest{
		Question: strptr("¿Nombre de tu mascota?"),
		Answer:   strptr("Mi Perro"),
	}))

	// La comparación es tolerante a mayúsculas y espacios.
	err = uc.ResetPassword(dto.ResetPasswordRequest{Answer: "  mi  perro ", NewPassword: "nueva"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*repo.business.PasswordHash), []byte("nueva")))
}

func TestResetPassword_RespuestaIncorrecta(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Setup(dto.SetupBusinessRequest{Name: "Kiosco"})
	require.NoError(t, err)
	require.NoError(t, uc.SetSecurityQA(dto.SecurityQARequest{
		Question: strptr("¿Nombre de tu mascota?"),
		Answer:   strptr("miperro"),
	}))

	err = uc.ResetPassword(dto.ResetPasswordRequest{Answer: "gato", NewPassword: "nueva"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResetPassword_SinPreguntaConfigurada(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Setup(dto.SetupBusinessRequest{Name: "Kiosco"})
	require.NoError(t, err)

	err = uc.ResetPassword(dto.ResetPasswordRequest{Answer: "lo que sea", NewPassword: "nueva"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recordatorio diario
// ──────────────────────────────────────────────────────────────────────────────

func TestSetReminderTime_ValidaFormato(t *testing.T) {
	uc, repo := newTestUseCase()
	_, err := uc.Setup(dto.SetupBusinessRequest{Name: "Kiosco"})
	require.NoError(t, err)

	require.NoError(t, uc.SetReminderTime(dto.ReminderTimeRequest{Time: "08:30"}))
	assert.Equal(t, "08:30", repo.business.ReminderTime)

	for _, bad := range []string{"25:00", "8:30", "20:60", "veinte", ""} {
		assert.ErrorIs(t, uc.SetReminderTime(dto.ReminderTimeRequest{Time: bad}), domain.ErrInvalidInput,
			"%q no es una hora HH:MM válida", bad)
	}
}
