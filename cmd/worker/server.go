package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	recipeJob "recipebook-backend/internal/domains/recipe/job"
	"recipebook-backend/internal/shared"
	"recipebook-backend/pkg/container"
	"recipebook-backend/pkg/logger"
)

// setupAsynqServer registers the job handlers and starts the worker in
// the background.
func setupAsynqServer(c *container.Container) *asynq.Server {
	mux := asynq.NewServeMux()

	deleteImages := recipeJob.NewDeleteImagesHandler(c.Storage)
	mux.HandleFunc(shared.TypeDeleteRecipeImages, deleteImages.ProcessTask)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 10,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task failed: "+task.Type(), err)
			}),
		},
	)

	go func() {
		log.Println("worker starting")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("worker failed: %v", err)
		}
	}()

	return srv
}
