package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"recipebook-backend/internal/config"
	catalogHandler "recipebook-backend/internal/domains/catalog/handler"
	catalogRepo "recipebook-backend/internal/domains/catalog/repository"
	catalogService "recipebook-backend/internal/domains/catalog/service"
	recipeHandler "recipebook-backend/internal/domains/recipe/handler"
	recipeRepo "recipebook-backend/internal/domains/recipe/repository"
	recipeService "recipebook-backend/internal/domains/recipe/service"
	relationHandler "recipebook-backend/internal/domains/relation/handler"
	relationRepo "recipebook-backend/internal/domains/relation/repository"
	relationService "recipebook-backend/internal/domains/relation/service"
	shoppinglistHandler "recipebook-backend/internal/domains/shoppinglist/handler"
	shoppinglistRepo "recipebook-backend/internal/domains/shoppinglist/repository"
	shoppinglistService "recipebook-backend/internal/domains/shoppinglist/service"
	userHandler "recipebook-backend/internal/domains/user/handler"
	userRepo "recipebook-backend/internal/domains/user/repository"
	userService "recipebook-backend/internal/domains/user/service"
	infraCache "recipebook-backend/internal/infrastructure/cache"
	"recipebook-backend/internal/infrastructure/database"
	"recipebook-backend/internal/infrastructure/storage"
	"recipebook-backend/pkg/cache"
	"recipebook-backend/pkg/jwt"
	"recipebook-backend/pkg/logger"
)

// Container holds the full dependency graph. Everything in it is a
// singleton built once at startup.
type Container struct {
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	Storage     *storage.MinIOStorage
	Images      *storage.ImageProcessor
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	CatalogRepo      catalogRepo.RepositoryInterface
	UserRepo         userRepo.RepositoryInterface
	RecipeRepo       recipeRepo.RepositoryInterface
	RelationRepo     relationRepo.RepositoryInterface
	ShoppingListRepo shoppinglistRepo.RepositoryInterface

	CatalogService      catalogService.ServiceInterface
	UserService         userService.ServiceInterface
	RecipeService       recipeService.ServiceInterface
	RelationService     relationService.ServiceInterface
	ShoppingListService shoppinglistService.ServiceInterface

	CatalogHandler      *catalogHandler.Handler
	UserHandler         *userHandler.UserHandler
	RecipeHandler       *recipeHandler.Handler
	RelationHandler     *relationHandler.Handler
	ShoppingListHandler *shoppinglistHandler.Handler
}

// NewContainer builds the graph in dependency order: config,
// infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)

	c.DB = database.NewPostgresDB(&cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	c.Cache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	c.Storage, err = storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	c.Images = storage.NewImageProcessor()

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Hour)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.CatalogRepo = catalogRepo.NewPostgresRepository(c.DB.Pool)
	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool)
	c.RecipeRepo = recipeRepo.NewPostgresRepository(c.DB.Pool)
	c.RelationRepo = relationRepo.NewPostgresRepository(c.DB.Pool)
	c.ShoppingListRepo = shoppinglistRepo.NewPostgresRepository(c.DB.Pool)

	c.CatalogService = catalogService.NewCatalogService(c.CatalogRepo, c.Cache)
	c.UserService = userService.NewUserService(c.UserRepo, c.RelationRepo, c.JWTManager)
	c.RecipeService = recipeService.NewRecipeService(c.RecipeRepo, c.Storage, c.Images, c.AsynqClient)
	c.RelationService = relationService.NewRelationService(c.RelationRepo, c.Storage)
	c.ShoppingListService = shoppinglistService.NewShoppingListService(c.ShoppingListRepo)

	c.CatalogHandler = catalogHandler.NewHandler(c.CatalogService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.RecipeHandler = recipeHandler.NewHandler(c.RecipeService)
	c.RelationHandler = relationHandler.NewHandler(c.RelationService)
	c.ShoppingListHandler = shoppinglistHandler.NewHandler(c.ShoppingListService)

	return c, nil
}

// Cleanup releases external connections. Safe to call once at shutdown.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("failed to close task client", err)
		}
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close cache", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
