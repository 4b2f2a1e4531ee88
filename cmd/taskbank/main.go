package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskbank/internal/ai"
	"taskbank/internal/config"
	"taskbank/internal/model"
	"taskbank/internal/repository"
	"taskbank/internal/seed"
	"taskbank/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	if err := seed.Run(ctx, db); err != nil {
		log.Fatalf("seed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	spaceRepo := repository.NewSpaceRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	evaluator := ai.New(cfg.AIEndpoint, cfg.AIAPIKey)

	categorySvc := service.NewCategoryService(categoryRepo)
	spaceSvc := service.NewSpaceService(spaceRepo, userRepo)
	taskSvc := service.NewTaskService(taskRepo, spaceRepo, evaluator)
	penaltySvc := service.NewPenaltyService(taskRepo, spaceRepo)

	if err := logSnapshot(ctx, spaceSvc, taskSvc, categorySvc); err != nil {
		log.Fatalf("snapshot: %v", err)
	}

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleInterval(cfg.SweepInterval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		charged, err := penaltySvc.AccrueOverdue(jobCtx, time.Now())
		if err != nil {
			log.Printf("penalty sweep: %v", err)
			return
		}
		if charged > 0 {
			log.Printf("penalty sweep: charged %d overdue task(s)", charged)
		}
	}); err != nil {
		log.Fatalf("schedule penalty sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Task bank engine started.")
	<-ctx.Done()
	log.Println("Shutdown complete.")
}

// logSnapshot writes a startup summary of every space: bank balance, member
// count, and the pending tasks with their display categories.
func logSnapshot(ctx context.Context, spaces *service.SpaceService, tasks *service.TaskService, categories *service.CategoryService) error {
	all, err := spaces.List(ctx)
	if err != nil {
		return err
	}
	for _, space := range all {
		log.Printf("space %q: %d member(s), bank %s %s",
			space.Name, len(space.Members), space.PenaltyBank.StringFixed(2), space.Currency)

		spaceTasks, err := tasks.ListBySpace(ctx, space.ID)
		if err != nil {
			return err
		}
		for _, task := range spaceTasks {
			if task.Status != model.StatusPending {
				continue
			}
			category := categories.Resolve(ctx, task.CategoryID)
			log.Printf("  pending: %s [%s] worth %s %s, due %s",
				task.Title, category.Name, task.Worth.StringFixed(2), task.Currency,
				task.DueDate.Format("2006-01-02 15:04"))
		}
	}
	return nil
}
