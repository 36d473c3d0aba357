package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresStorage keeps a slot as one row of cart_slots.
type PostgresStorage struct {
	pool DBPool
	slot string
}

func NewPostgresStorage(pool DBPool, slot string) *PostgresStorage {
	return &PostgresStorage{pool: pool, slot: slot}
}

func (p *PostgresStorage) Load(ctx context.Context) ([]byte, bool, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT payload FROM cart_slots WHERE slot=$1`, p.slot).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (p *PostgresStorage) Save(ctx context.Context, raw []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO cart_slots(slot, payload)
		VALUES($1, $2::jsonb)
		ON CONFLICT (slot) DO UPDATE SET payload=EXCLUDED.payload, updated_at=now()
	`, p.slot, string(raw))
	return err
}
