package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mlipin/todoplanner/internal/model"
)

// TextGenerator - внешний сервис генерации текста. Любой его отказ
// восстанавливается локально запасным отчетом.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TaskStore - минимальная поверхность фасада задач, нужная агрегатору
type TaskStore interface {
	ListCreatedBetween(ctx context.Context, ownerID int64, from, to time.Time) ([]model.Task, error)
	CreateSystem(ctx context.Context, t model.Task) (model.Task, error)
}

// OwnerSource отдает получателей отчетов
type OwnerSource interface {
	Get(ctx context.Context, id int64) (model.Owner, error)
	ListActive(ctx context.Context) ([]model.Owner, error)
}

// Aggregator собирает дневную активность каждого владельца в отчет-задачу
type Aggregator struct {
	store  TaskStore
	owners OwnerSource
	gen    TextGenerator
	logger *zap.Logger
	now    func() time.Time
}

func NewAggregator(store TaskStore, owners OwnerSource, gen TextGenerator, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		store:  store,
		owners: owners,
		gen:    gen,
		logger: logger,
		now:    time.Now,
	}
}

type Options struct {
	Date    time.Time // нулевое значение - сегодня
	OwnerID int64     // 0 - все активные владельцы
}

type RunResult struct {
	RunID   string `json:"run_id"`
	Date    string `json:"date"`
	Success int    `json:"success"`
	Skipped int    `json:"skipped"`
	Errors  int    `json:"errors"`
	Total   int    `json:"total"`
}

// Run прогоняет агрегацию по всем подходящим владельцам. Ошибка одного
// владельца логируется и считается, но не прерывает остальных.
func (a *Aggregator) Run(ctx context.Context, opts Options) (RunResult, error) {
	date := opts.Date
	if date.IsZero() {
		date = a.now()
	}
	// Окно - полные сутки локального дня
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.Add(24 * time.Hour)

	result := RunResult{
		RunID: uuid.NewString(),
		Date:  from.Format("2006-01-02"),
	}

	owners, err := a.eligibleOwners(ctx, opts.OwnerID)
	if err != nil {
		return result, err
	}
	result.Total = len(owners)

	a.logger.Info("daily review run started",
		zap.String("run_id", result.RunID),
		zap.String("date", result.Date),
		zap.Int("owners", len(owners)),
	)

	for _, owner := range owners {
		generated, err := a.reviewOwner(ctx, owner, from, to, result.Date)
		switch {
		case err != nil:
			result.Errors++
			a.logger.Error("daily review failed for owner",
				zap.String("run_id", result.RunID),
				zap.Int64("owner_id", owner.ID),
				zap.String("username", owner.Username),
				zap.Error(err),
			)
		case generated:
			result.Success++
		default:
			result.Skipped++
		}
	}

	a.logger.Info("daily review run finished",
		zap.String("run_id", result.RunID),
		zap.String("date", result.Date),
		zap.Int("success", result.Success),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.Errors),
	)
	return result, nil
}

// RunNow - точка входа для планировщика: прогон за сегодня по всем владельцам
func (a *Aggregator) RunNow() {
	if _, err := a.Run(context.Background(), Options{}); err != nil {
		a.logger.Error("scheduled daily review run failed", zap.Error(err))
	}
}

func (a *Aggregator) eligibleOwners(ctx context.Context, ownerID int64) ([]model.Owner, error) {
	if ownerID == 0 {
		return a.owners.ListActive(ctx)
	}

	owner, err := a.owners.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("owner %d: %w", ownerID, err)
	}
	if !owner.IsActive || owner.IsAdmin {
		return nil, fmt.Errorf("owner %d is inactive or admin", ownerID)
	}
	return []model.Owner{owner}, nil
}

// reviewOwner возвращает true, если собран полноценный отчет,
// false - если владельцу ушло только напоминание
func (a *Aggregator) reviewOwner(ctx context.Context, owner model.Owner, from, to time.Time, date string) (bool, error) {
	tasks, err := a.store.ListCreatedBetween(ctx, owner.ID, from, to)
	if err != nil {
		return false, err
	}

	if len(tasks) == 0 {
		_, err := a.store.CreateSystem(ctx, model.Task{
			Title:       reviewTitle(date),
			Description: reminderReport(date),
			Type:        model.TypeRecord,
			Priority:    model.PriorityLow,
			OwnerID:     owner.ID,
		})
		return false, err
	}

	summary := buildSummary(tasks, date)
	content := a.generateReview(ctx, owner, summary)

	_, err = a.store.CreateSystem(ctx, model.Task{
		Title:       reviewTitle(date),
		Description: content,
		Type:        model.TypeRecord,
		Priority:    model.PriorityMedium,
		OwnerID:     owner.ID,
	})
	return err == nil, err
}

// generateReview запрашивает нарратив у генератора; на любой отказ
// возвращает детерминированный запасной отчет
func (a *Aggregator) generateReview(ctx context.Context, owner model.Owner, summary Summary) string {
	content, err := a.gen.Generate(ctx, buildPrompt(summary))
	if err != nil {
		a.logger.Warn("text generation failed, using fallback report",
			zap.Int64("owner_id", owner.ID),
			zap.Error(err),
		)
		return fallbackReport(summary)
	}
	return formatReview(content)
}
