package repository

import "github.com/biztrack/biztrack-api/internal/domain/entity"

// BusinessRepository define el puerto de persistencia de la identidad del
// negocio (fila única). Get devuelve (nil, nil) si aún no hay negocio creado.
type BusinessRepository interface {
	Create(b *entity.Business) error
	Get() (*entity.Business, error)
	GetByID(id string) (*entity.Business, error)
	Update(b *entity.Business) error
	SetPasswordHash(id string, hash *string) error
	SetResetEmail(id string, email *string) error
	SetSecurityQA(id string, question, answer *string) error
	SetReminderTime(id string, reminderTime string) error
}
