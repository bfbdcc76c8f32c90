package http

import (
	"context"
	"log/slog"
	"time"

	"ziluri/internal/adapter/cache/memory"
	"ziluri/internal/adapter/cache/redis"
	database "ziluri/internal/adapter/database/sqlite"
	repository "ziluri/internal/adapter/database/sqlite/repository"
	"ziluri/internal/adapter/http/handler"
	"ziluri/internal/core/calendar"
	"ziluri/internal/core/dates"
	"ziluri/internal/core/port"
	"ziluri/internal/core/schedule"
	"ziluri/internal/core/service"
	"ziluri/pkg/auth"
	"ziluri/pkg/config"
)

type Container struct {
	GroupRepo port.GroupRepository
	ItemRepo  port.ItemRepository
	UserRepo  port.UserRepository
	MemoRepo  port.MemoRepository
	Cache     port.CacheRepository

	UserUseCase     port.UserService
	TodoUseCase     port.TodoService
	MemoUseCase     port.MemoService
	CalendarUseCase port.CalendarService
	AuthUseCase     port.AuthService

	SessionHandler  *handler.SessionHandler
	GroupHandler    *handler.GroupHandler
	TodoHandler     *handler.TodoHandler
	CalendarHandler *handler.CalendarHandler
	MemoHandler     *handler.MemoHandler
	ProfileHandler  *handler.ProfileHandler
}

func NewContainer(db *database.DB, logger *config.LokiLogger, cfg *config.AppConfig, probe port.Telemetry) *Container {
	cache := newCacheRepository(cfg)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Warn("Unknown timezone, falling back to local", "timezone", cfg.Timezone)
		loc = time.Local
	}

	bucket := dates.NewBucket(loc)
	clock := dates.NewSystemClock(bucket)
	resolver := schedule.NewResolver(bucket)
	grid := calendar.NewGridBuilder(bucket)

	groupRepo := repository.NewGroupRepository(db, probe)
	itemRepo := repository.NewItemRepository(db, probe)
	userRepo := repository.NewUserRepository(db, probe)
	memoRepo := repository.NewMemoRepository(db, probe)

	userSvc := service.NewUserService(userRepo, bucket, clock)
	todoSvc := service.NewTodoService(groupRepo, itemRepo, userSvc, resolver, bucket, clock, cache, probe)
	memoSvc := service.NewMemoService(memoRepo, clock)
	calendarSvc := service.NewCalendarService(itemRepo, resolver, grid, bucket, clock, cache)
	authSvc := service.NewAuthService(userSvc, authTokens(cfg))

	return &Container{
		GroupRepo: groupRepo,
		ItemRepo:  itemRepo,
		UserRepo:  userRepo,
		MemoRepo:  memoRepo,
		Cache:     cache,

		UserUseCase:     userSvc,
		TodoUseCase:     todoSvc,
		MemoUseCase:     memoSvc,
		CalendarUseCase: calendarSvc,
		AuthUseCase:     authSvc,

		SessionHandler:  handler.NewSessionHandler(authSvc, userSvc),
		GroupHandler:    handler.NewGroupHandler(todoSvc),
		TodoHandler:     handler.NewTodoHandler(todoSvc, clock, logger),
		CalendarHandler: handler.NewCalendarHandler(calendarSvc, clock),
		MemoHandler:     handler.NewMemoHandler(memoSvc),
		ProfileHandler:  handler.NewProfileHandler(userSvc),
	}
}

func authTokens(cfg *config.AppConfig) *auth.JWT {
	return auth.NewJWT(cfg.JWTSecret)
}

func newCacheRepository(cfg *config.AppConfig) port.CacheRepository {
	if cfg.CacheDriver == "redis" {
		cache, err := redis.NewRepository(context.Background(), cfg.RedisAddr)
		if err != nil {
			slog.Warn("Redis unreachable, using in-memory cache", "error", err, "addr", cfg.RedisAddr)
			return memory.NewRepository()
		}
		return cache
	}

	return memory.NewRepository()
}
