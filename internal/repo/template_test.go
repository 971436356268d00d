// internal/repo/template_test.go
package repo

import (
	"context"
	"testing"

	"github.com/mlipin/todoplanner/internal/model"
)

func TestTemplateRepo_DuplicateName(t *testing.T) {
	pool, ownerID := setupTestDB(t)
	defer pool.Close()

	repo := NewTemplateRepo(pool)
	ctx := context.Background()

	tpl := model.QuickTemplate{
		Name:          "Standup",
		TitleTemplate: "Standup {date}",
		Type:          model.TypeTask,
		Priority:      model.PriorityMedium,
		OwnerID:       ownerID,
		IsActive:      true,
	}

	if _, err := repo.Create(ctx, tpl); err != nil {
		t.Fatal(err)
	}

	_, err := repo.Create(ctx, tpl)
	if err != ErrorConflict {
		t.Errorf("expected ErrorConflict for duplicate name, got %v", err)
	}

	// То же имя у другого владельца допустимо
	var otherID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO users (username) VALUES ('other') RETURNING id
	`).Scan(&otherID)
	if err != nil {
		t.Fatal(err)
	}

	tpl.OwnerID = otherID
	if _, err := repo.Create(ctx, tpl); err != nil {
		t.Errorf("expected create for another owner to succeed, got %v", err)
	}
}

func TestTemplateRepo_Delete(t *testing.T) {
	pool, ownerID := setupTestDB(t)
	defer pool.Close()

	repo := NewTemplateRepo(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.QuickTemplate{
		Name:          "Retro",
		TitleTemplate: "Retro {date}",
		Type:          model.TypeRecord,
		Priority:      model.PriorityLow,
		OwnerID:       ownerID,
		IsActive:      true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, created.ID); err != ErrorNotFound {
		t.Errorf("expected ErrorNotFound on second delete, got %v", err)
	}

	if _, err := repo.Get(ctx, created.ID); err != ErrorNotFound {
		t.Errorf("expected ErrorNotFound after delete, got %v", err)
	}
}
