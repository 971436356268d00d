package tests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mlipin/todoplanner/internal/model"
	"github.com/mlipin/todoplanner/internal/repo"
	"github.com/mlipin/todoplanner/internal/review"
	"github.com/mlipin/todoplanner/internal/service"
)

type scriptedGenerator struct {
	response string
	err      error
	calls    int
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func TestIntegration_DailyReviewRun(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()
	TruncateTables(t, pool)

	activeID := SeedUser(t, pool, "worker", false)
	idleID := SeedUser(t, pool, "idle", false)
	SeedUser(t, pool, "admin", true) // админы отчеты не получают

	SeedTasks(t, pool, activeID, 4)

	taskService := service.NewTaskService(repo.NewTaskRepo(pool))
	ownerRepo := repo.NewOwnerRepo(pool)
	gen := &scriptedGenerator{response: "**Efficiency**\nBusy.\n**Highlights**\nGood.\n**Risks**\nNone.\n**Suggestions**\nRest.\n**Mood**\nCalm."}

	aggregator := review.NewAggregator(taskService, ownerRepo, gen, zap.NewNop())

	result, err := aggregator.Run(context.Background(), review.Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Errors)
	assert.Equal(t, 1, gen.calls)

	date := time.Now().Format("2006-01-02")
	wantTitle := "Daily review – " + date

	assertReport := func(ownerID int64, wantPriority model.Priority, wantFragment string) {
		var description string
		var priority model.Priority
		err := pool.QueryRow(context.Background(), `
			SELECT description, priority FROM tasks
			WHERE owner_id = $1 AND todo_type = 'record' AND title = $2
		`, ownerID, wantTitle).Scan(&description, &priority)
		require.NoError(t, err)
		assert.Equal(t, wantPriority, priority)
		assert.True(t, strings.Contains(description, wantFragment),
			fmt.Sprintf("report for owner %d must contain %q", ownerID, wantFragment))
	}

	assertReport(activeID, model.PriorityMedium, "**Efficiency**")
	assertReport(idleID, model.PriorityLow, "Friendly reminder")
}

func TestIntegration_DailyReviewFallback(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()
	TruncateTables(t, pool)

	ownerID := SeedUser(t, pool, "worker", false)
	SeedTasks(t, pool, ownerID, 2)

	taskService := service.NewTaskService(repo.NewTaskRepo(pool))
	gen := &scriptedGenerator{err: errors.New("service unavailable")}

	aggregator := review.NewAggregator(taskService, repo.NewOwnerRepo(pool), gen, zap.NewNop())

	result, err := aggregator.Run(context.Background(), review.Options{OwnerID: ownerID})
	require.NoError(t, err)

	// Отказ генератора не срывает прогон: владелец получает запасной отчет
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 0, result.Errors)

	var description string
	err = pool.QueryRow(context.Background(), `
		SELECT description FROM tasks
		WHERE owner_id = $1 AND todo_type = 'record'
	`, ownerID).Scan(&description)
	require.NoError(t, err)
	assert.Contains(t, description, "2 new tasks were recorded today")
	assert.Contains(t, description, "the AI analysis service was unavailable")
}
