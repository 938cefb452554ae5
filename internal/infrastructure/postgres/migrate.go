package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// createStatements esquema base. CREATE ... IF NOT EXISTS: el bootstrap se
// ejecuta en cada arranque.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS business (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		logo_uri TEXT,
		password_hash TEXT,
		reset_email TEXT,
		security_question TEXT,
		security_answer TEXT,
		reminder_time TEXT NOT NULL DEFAULT '20:00',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		image_uri TEXT,
		selling_price NUMERIC NOT NULL DEFAULT 0,
		total_quantity BIGINT NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'USD',
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stock_batches (
		id BIGSERIAL PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id),
		ordering_price NUMERIC NOT NULL,
		total_cost NUMERIC NOT NULL CHECK (total_cost >= 0),
		quantity BIGINT NOT NULL CHECK (quantity >= 0),
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_batches_fifo
		ON stock_batches (product_id, created_at, id) WHERE quantity > 0`,
	`CREATE TABLE IF NOT EXISTS sales (
		id BIGSERIAL PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id),
		quantity_sold BIGINT NOT NULL CHECK (quantity_sold > 0),
		selling_price NUMERIC NOT NULL,
		profit NUMERIC NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_product_created ON sales (product_id, created_at)`,
}

// alterStatements migraciones aditivas para bases creadas con esquemas
// anteriores. El error de columna duplicada se ignora.
var alterStatements = []string{
	`ALTER TABLE products ADD COLUMN currency TEXT NOT NULL DEFAULT 'USD'`,
	`ALTER TABLE business ADD COLUMN reset_email TEXT`,
	`ALTER TABLE business ADD COLUMN security_question TEXT`,
	`ALTER TABLE business ADD COLUMN security_answer TEXT`,
	`ALTER TABLE business ADD COLUMN reminder_time TEXT NOT NULL DEFAULT '20:00'`,
}

// Migrate crea el esquema si no existe y aplica las migraciones aditivas.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range createStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap esquema: %w", err)
		}
	}
	for _, stmt := range alterStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil && !isDuplicateColumn(err) {
			return fmt.Errorf("migración aditiva: %w", err)
		}
	}
	return nil
}
