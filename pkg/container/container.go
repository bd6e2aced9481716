package container

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	authorHandler "library-catalog/internal/domains/author/handler"
	authorRepo "library-catalog/internal/domains/author/repository"
	authorService "library-catalog/internal/domains/author/service"
	bookHandler "library-catalog/internal/domains/book/handler"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/shared/routes"
	"library-catalog/internal/web"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/pagination"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container giữ toàn bộ dependency graph của app.
// Thứ tự init: Config -> Infrastructure -> Repositories -> Services -> Handlers
type Container struct {
	// Infrastructure
	Config    *config.Config
	DB        *database.PostgresDB
	Redis     *infraCache.RedisClient // nil khi CACHE_DRIVER=memory
	Cache     *cache.TagCache
	Paginator *pagination.Paginator

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface

	// Services
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.Handler
	WebHandler    *web.Handler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer kết nối DB + cache rồi build repositories, services, handlers.
// Lỗi ở bất kỳ bước nào sẽ cleanup những gì đã mở.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("env", cfg.App.Environment).Msg("[CONTAINER] Initializing")

	c := &Container{Config: cfg}

	if err := c.initDatabase(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}
	if err := c.initCache(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.Paginator = pagination.NewPaginator(routes.Table(), cfg.Pagination.MaxPerPage)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("[CONTAINER] Ready")
	return c, nil
}

// ========================================
// INFRASTRUCTURE
// ========================================

func (c *Container) initDatabase(ctx context.Context) error {
	db := database.NewPostgresDB(c.Config.Database)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if c.Config.App.AutoMigrate {
		if err := database.Migrate(ctx, c.Config.Database.DSN(), "up"); err != nil {
			return err
		}
	}

	// Registerer mặc định: promhttp.Handler() ở /metrics sẽ thấy pool gauges
	if err := db.RegisterPoolMetrics(prometheus.DefaultRegisterer); err != nil {
		log.Warn().Err(err).Msg("[CONTAINER] Pool metrics not registered")
	}

	return nil
}

func (c *Container) initCache(ctx context.Context) error {
	var store cache.Store

	switch c.Config.Cache.Driver {
	case config.CacheDriverRedis:
		rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
		c.Redis = rc

		// Redis down lúc start là lỗi: tag cache không có fallback an toàn
		if err := rc.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		store = infraCache.NewRedisTagStore(rc.Client, c.Config.Cache.Namespace)

	case config.CacheDriverMemory:
		memCfg := cache.DefaultMemoryConfig()
		memCfg.Capacity = c.Config.Cache.MemoryCapacity
		memCfg.NumShards = c.Config.Cache.MemoryShards
		memCfg.TTL = c.Config.Cache.TTL

		mem, err := cache.NewMemoryStore(memCfg)
		if err != nil {
			return fmt.Errorf("failed to create memory cache: %w", err)
		}
		store = mem

	default:
		return fmt.Errorf("unknown cache driver %q", c.Config.Cache.Driver)
	}

	c.Cache = cache.NewTagCache(store, c.Config.Cache.TTL)
	log.Info().Str("driver", c.Config.Cache.Driver).Dur("ttl", c.Config.Cache.TTL).Msg("[CONTAINER] Cache ready")
	return nil
}

// ========================================
// DOMAIN LAYERS
// ========================================

func (c *Container) initRepositories() {
	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool)
	c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool, bookRepo.NewCountMaintainer())
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Cache, c.Paginator)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, c.Cache, c.Paginator)
}

func (c *Container) initHandlers() {
	perPage := c.Config.Pagination.DefaultPerPage

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, perPage)
	c.BookHandler = bookHandler.NewHandler(c.BookService, perPage)
	c.WebHandler = web.NewHandler(c.AuthorService, c.BookService)
}

// Cleanup đóng DB pool và redis client. An toàn khi gọi với container init dở.
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close database")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close redis")
		}
	}

	log.Info().Msg("[CONTAINER] Cleanup completed")
}
