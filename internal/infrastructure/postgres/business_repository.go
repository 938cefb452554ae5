package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/biztrack/biztrack-api/internal/domain"
	"github.com/biztrack/biztrack-api/internal/domain/entity"
	"github.com/biztrack/biztrack-api/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación del puerto BusinessRepository sobre PostgreSQL.
// La tabla business contiene a lo sumo una fila.
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador de identidad del negocio.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

const businessColumns = `id, name, logo_uri, password_hash, reset_email, security_question, security_answer, reminder_time, created_at`

// Create persiste la identidad del negocio.
func (r *BusinessRepo) Create(b *entity.Business) error {
	query := `
		INSERT INTO business (` + businessColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Name, b.LogoURI, b.PasswordHash, b.ResetEmail,
		b.SecurityQuestion, b.SecurityAnswer, b.ReminderTime, b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// Get devuelve la única fila de negocio, o (nil, nil) si aún no se configuró.
func (r *BusinessRepo) Get() (*entity.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM business ORDER BY created_at ASC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query))
}

// GetByID obtiene el negocio por ID. Devuelve (nil, nil) si no existe.
func (r *BusinessRepo) GetByID(id string) (*entity.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM business WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *BusinessRepo) scanOne(row pgx.Row) (*entity.Business, error) {
	var b entity.Business
	err := row.Scan(
		&b.ID, &b.Name, &b.LogoURI, &b.PasswordHash, &b.ResetEmail,
		&b.SecurityQuestion, &b.SecurityAnswer, &b.ReminderTime, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// Update actualiza nombre y logo.
func (r *BusinessRepo) Update(b *entity.Business) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE business SET name = $2, logo_uri = $3 WHERE id = $1`,
		b.ID, b.Name, b.LogoURI,
	)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}

// SetPasswordHash fija (o borra, con nil) el hash de la contraseña de bloqueo.
func (r *BusinessRepo) SetPasswordHash(id string, hash *string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE business SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("set password hash: %w", err)
	}
	return nil
}

// SetResetEmail fija (o borra, con nil) el correo de recuperación.
func (r *BusinessRepo) SetResetEmail(id string, email *string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE business SET reset_email = $2 WHERE id = $1`, id, email)
	if err != nil {
		return fmt.Errorf("set reset email: %w", err)
	}
	return nil
}

// SetSecurityQA fija la pregunta de seguridad y su respuesta normalizada.
func (r *BusinessRepo) SetSecurityQA(id string, question, answer *string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE business SET security_question = $2, security_answer = $3 WHERE id = $1`,
		id, question, answer)
	if err != nil {
		return fmt.Errorf("set security qa: %w", err)
	}
	return nil
}

// SetReminderTime fija la hora del recordatorio diario ("HH:MM").
func (r *BusinessRepo) SetReminderTime(id string, reminderTime string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE business SET reminder_time = $2 WHERE id = $1`, id, reminderTime)
	if err != nil {
		return fmt.Errorf("set reminder time: %w", err)
	}
	return nil
}
