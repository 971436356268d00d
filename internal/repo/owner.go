package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlipin/todoplanner/internal/model"
)

// OwnerRepo читает локальное зеркало аккаунтов из сервиса идентификации
type OwnerRepo struct {
	pool *pgxpool.Pool
}

func NewOwnerRepo(pool *pgxpool.Pool) *OwnerRepo {
	return &OwnerRepo{
		pool: pool,
	}
}

func (r *OwnerRepo) Get(ctx context.Context, id int64) (model.Owner, error) {
	var o model.Owner
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, nickname, is_active, is_admin
		FROM users
		WHERE id = $1
	`, id).Scan(&o.ID, &o.Username, &o.Nickname, &o.IsActive, &o.IsAdmin)

	if err == pgx.ErrNoRows {
		return o, ErrorNotFound
	}
	return o, err
}

// ListActive возвращает активные неадминские аккаунты - получателей ежедневных отчетов
func (r *OwnerRepo) ListActive(ctx context.Context) ([]model.Owner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, username, nickname, is_active, is_admin
		FROM users
		WHERE is_active = true AND is_admin = false
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := make([]model.Owner, 0)
	for rows.Next() {
		var o model.Owner
		if err := rows.Scan(&o.ID, &o.Username, &o.Nickname, &o.IsActive, &o.IsAdmin); err != nil {
			return nil, err
		}
		owners = append(owners, o)
	}
	return owners, rows.Err()
}
