package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mlipin/todoplanner/internal/auth"
	"github.com/mlipin/todoplanner/internal/config"
	"github.com/mlipin/todoplanner/internal/gemini"
	"github.com/mlipin/todoplanner/internal/handler"
	"github.com/mlipin/todoplanner/internal/repo"
	"github.com/mlipin/todoplanner/internal/review"
	"github.com/mlipin/todoplanner/internal/scheduler"
	"github.com/mlipin/todoplanner/internal/service"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключаем БД
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to Database.")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping the Database.")
	}
	logger.Info("Successfully connected to the Database!")

	// Сервисы
	taskRepo := repo.NewTaskRepo(pool)
	templateRepo := repo.NewTemplateRepo(pool)
	ownerRepo := repo.NewOwnerRepo(pool)

	taskService := service.NewTaskService(taskRepo)
	templateService := service.NewTemplateService(templateRepo, taskService)

	generator := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	aggregator := review.NewAggregator(taskService, ownerRepo, generator, logger)

	// Планировщик: ровно одна регистрация ежедневного отчета на процесс
	sched := scheduler.New(logger)
	sched.Register("daily_review_job", "generate daily review reports",
		cfg.ReviewHour, cfg.ReviewMinute, aggregator.RunNow)
	sched.Start()
	defer sched.Stop()

	taskHandler := handler.NewTaskHandler(taskService, logger)
	templateHandler := handler.NewTemplateHandler(templateService, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(auth.Middleware([]byte(cfg.JWTSecret)))
		taskHandler.Routes(api)
		templateHandler.Routes(api)
	})

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	logger.Info("Server stopped succsessfully!")
}
