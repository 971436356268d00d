package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlipin/todoplanner/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

// Канонический порядок выдачи: вес приоритета, затем свежие записи
const taskOrder = `
	ORDER BY CASE priority
		WHEN 'high' THEN 1
		WHEN 'medium' THEN 2
		WHEN 'low' THEN 3
		ELSE 4
	END, created_at DESC, id DESC`

const taskColumns = `id, title, description, todo_type, status, priority, completed,
	owner_id, parent_id, is_deleted, created_at, updated_at`

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{
		pool: pool,
	}
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Type, &t.Status, &t.Priority,
		&t.Completed, &t.OwnerID, &t.ParentID, &t.IsDeleted, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func collectTasks(rows pgx.Rows) ([]model.Task, error) {
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, todo_type, status, priority, completed, owner_id, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+taskColumns,
		t.Title, t.Description, t.Type, t.Status, t.Priority, t.Completed, t.OwnerID, t.ParentID,
	)

	created, err := scanTask(row)
	return created, r.mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1
	`, id)

	t, err := scanTask(row)
	if err == pgx.ErrNoRows {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	// Видимость удаленных по умолчанию выключена
	showDeleted := false
	if filter.ShowDeleted != nil {
		showDeleted = *filter.ShowDeleted
	}

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE ($1::bigint IS NULL OR owner_id = $1)
		  AND ($2::bool IS NULL OR completed = $2)
		  AND ($3::text IS NULL OR todo_type = $3)
		  AND ($4::text = '' OR title ILIKE '%' || $4 || '%' OR description ILIKE '%' || $4 || '%')
		  AND is_deleted = $5
	` + taskOrder

	var typ *string
	if filter.Type != nil {
		s := string(*filter.Type)
		typ = &s
	}

	rows, err := r.pool.Query(ctx, query, filter.OwnerID, filter.Completed, typ, filter.Search, showDeleted)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, todo_type = $4, status = $5, priority = $6,
		    completed = $7, parent_id = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+taskColumns,
		t.ID, t.Title, t.Description, t.Type, t.Status, t.Priority, t.Completed, t.ParentID,
	)

	updated, err := scanTask(row)
	if err == pgx.ErrNoRows {
		return updated, ErrorNotFound
	}
	return updated, r.mapError(err)
}

func (r *TaskRepo) ListByParent(ctx context.Context, parentID int64) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE parent_id = $1 AND is_deleted = false
	`+taskOrder, parentID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepo) HasChildren(ctx context.Context, parentID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM tasks WHERE parent_id = $1 AND is_deleted = false)
	`, parentID).Scan(&exists)
	return exists, err
}

func (r *TaskRepo) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks WHERE owner_id = $1
	`, ownerID).Scan(&count)
	return count, err
}

func (r *TaskRepo) ListCreatedBetween(ctx context.Context, ownerID int64, from, to time.Time) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE owner_id = $1 AND is_deleted = false
		  AND created_at >= $2 AND created_at < $3
	`+taskOrder, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepo) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE tasks SET is_deleted = $2, updated_at = now() WHERE id = $1
	`, id, deleted)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TaskRepo) ListDeleted(ctx context.Context) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE is_deleted = true
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// Массовые операции выражены одним set-based UPDATE.
// ownerID = nil означает "по всем владельцам" (расширенные права).

func (r *TaskRepo) MarkAllCompleted(ctx context.Context, ownerID *int64) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET completed = true, updated_at = now()
		WHERE completed = false AND is_deleted = false
		  AND ($1::bigint IS NULL OR owner_id = $1)
	`, ownerID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *TaskRepo) ClearCompleted(ctx context.Context, ownerID *int64) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET is_deleted = true, updated_at = now()
		WHERE completed = true AND is_deleted = false
		  AND ($1::bigint IS NULL OR owner_id = $1)
	`, ownerID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *TaskRepo) BatchRestore(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	cmd, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET is_deleted = false, updated_at = now()
		WHERE id = ANY($1) AND is_deleted = true
	`, ids)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *TaskRepo) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrorConflict
		case "23503": // битая ссылка на родителя или владельца
			return ErrorNotFound
		}
	}
	return err
}
