package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlipin/todoplanner/internal/model"
)

const templateColumns = `id, name, title_template, description_template, todo_type,
	priority, owner_id, is_active, created_at, updated_at`

type TemplateRepo struct {
	pool *pgxpool.Pool
}

func NewTemplateRepo(pool *pgxpool.Pool) *TemplateRepo {
	return &TemplateRepo{
		pool: pool,
	}
}

func scanTemplate(row pgx.Row) (model.QuickTemplate, error) {
	var tpl model.QuickTemplate
	err := row.Scan(
		&tpl.ID, &tpl.Name, &tpl.TitleTemplate, &tpl.DescTemplate, &tpl.Type,
		&tpl.Priority, &tpl.OwnerID, &tpl.IsActive, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	return tpl, err
}

func (r *TemplateRepo) Create(ctx context.Context, tpl model.QuickTemplate) (model.QuickTemplate, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO quick_templates (name, title_template, description_template, todo_type, priority, owner_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+templateColumns,
		tpl.Name, tpl.TitleTemplate, tpl.DescTemplate, tpl.Type, tpl.Priority, tpl.OwnerID, tpl.IsActive,
	)

	created, err := scanTemplate(row)
	return created, mapTemplateError(err)
}

func (r *TemplateRepo) Get(ctx context.Context, id int64) (model.QuickTemplate, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+templateColumns+`
		FROM quick_templates
		WHERE id = $1
	`, id)

	tpl, err := scanTemplate(row)
	if err == pgx.ErrNoRows {
		return tpl, ErrorNotFound
	}
	return tpl, err
}

func (r *TemplateRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.QuickTemplate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+templateColumns+`
		FROM quick_templates
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tpls := make([]model.QuickTemplate, 0)
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		tpls = append(tpls, tpl)
	}
	return tpls, rows.Err()
}

func (r *TemplateRepo) Update(ctx context.Context, tpl model.QuickTemplate) (model.QuickTemplate, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE quick_templates
		SET name = $2, title_template = $3, description_template = $4,
		    todo_type = $5, priority = $6, is_active = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+templateColumns,
		tpl.ID, tpl.Name, tpl.TitleTemplate, tpl.DescTemplate, tpl.Type, tpl.Priority, tpl.IsActive,
	)

	updated, err := scanTemplate(row)
	if err == pgx.ErrNoRows {
		return updated, ErrorNotFound
	}
	return updated, mapTemplateError(err)
}

func mapTemplateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // дубликат имени в пределах владельца
		return ErrorConflict
	}
	return err
}

func (r *TemplateRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM quick_templates WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}
