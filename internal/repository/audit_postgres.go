package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/api/internal/models"
)

type PostgresAuditStore struct {
	pool *pgxpool.Pool
}

func NewPostgresAuditStore(pool *pgxpool.Pool) *PostgresAuditStore {
	return &PostgresAuditStore{pool: pool}
}

func (s *PostgresAuditStore) Record(ctx context.Context, event models.AuditEvent) error {
	const query = `
		INSERT INTO audit_events (
			id, user_id, action, ip_address, detail, created_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW()
		)
	`

	_, err := s.pool.Exec(ctx, query,
		event.ID,
		event.UserID,
		event.Action,
		event.IPAddress,
		event.Detail,
	)
	return err
}

func (s *PostgresAuditStore) DeleteOlderThan(ctx context.Context, cutoffDays int) (int64, error) {
	const query = `
		DELETE FROM audit_events WHERE created_at < NOW() - $1::interval
	`

	cmd, err := s.pool.Exec(ctx, query, fmt.Sprintf("%d days", cutoffDays))
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
