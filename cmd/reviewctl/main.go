package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mlipin/todoplanner/internal/config"
	"github.com/mlipin/todoplanner/internal/gemini"
	"github.com/mlipin/todoplanner/internal/repo"
	"github.com/mlipin/todoplanner/internal/review"
	"github.com/mlipin/todoplanner/internal/service"
)

// reviewctl запускает генерацию ежедневных отчетов вручную - для отладки
// и повторных прогонов за прошедшие даты
func main() {
	var (
		dateFlag string
		userID   int64
		verbose  bool
	)

	rootCmd := &cobra.Command{
		Use:   "reviewctl",
		Short: "Manual daily review generation",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Generate daily review reports for eligible owners",
		RunE: func(cmd *cobra.Command, args []string) error {
			var logger *zap.Logger
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg := config.Load()

			pool, err := pgxpool.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			if err := pool.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}

			opts := review.Options{OwnerID: userID}
			if dateFlag != "" {
				date, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date, want YYYY-MM-DD: %w", err)
				}
				opts.Date = date
			}

			taskService := service.NewTaskService(repo.NewTaskRepo(pool))
			generator := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
			aggregator := review.NewAggregator(taskService, repo.NewOwnerRepo(pool), generator, logger)

			result, err := aggregator.Run(context.Background(), opts)
			if err != nil {
				return err
			}

			fmt.Printf("Run %s for %s\n", result.RunID, result.Date)
			fmt.Printf("  success: %d\n", result.Success)
			fmt.Printf("  skipped: %d\n", result.Skipped)
			fmt.Printf("  errors:  %d\n", result.Errors)
			fmt.Printf("  owners:  %d\n", result.Total)
			return nil
		},
	}

	runCmd.Flags().StringVar(&dateFlag, "date", "", "target date in YYYY-MM-DD format (default: today)")
	runCmd.Flags().Int64Var(&userID, "user-id", 0, "generate a review for this owner only")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
