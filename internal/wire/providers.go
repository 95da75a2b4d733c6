// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"book-weaver-api/internal/application/ledger"
	"book-weaver-api/internal/config"
	"book-weaver-api/internal/infrastructure/persistence/redis"
	"book-weaver-api/internal/infrastructure/persistence/snapshot"
	"book-weaver-api/internal/interfaces/http/handler"
	"book-weaver-api/internal/interfaces/http/router"
	apperrors "book-weaver-api/pkg/errors"
)

// App 应用依赖容器
type App struct {
	Router  *router.Router
	Ledger  *ledger.Ledger
	Sweeper *ledger.BirthdaySweeper
}

// ProvideRedisClient 提供 Redis 客户端。
// 状态存储未选用 redis 时返回 nil，健康检查会将其报告为 disabled。
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	if cfg.Store.Driver != "redis" {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideSnapshotStore 按配置选择状态快照存储
func ProvideSnapshotStore(cfg *config.Config, client *redis.Client) (snapshot.Store, error) {
	switch cfg.Store.Driver {
	case "redis":
		return snapshot.NewRedisStore(client, cfg.Store.Key), nil
	case "file", "":
		return snapshot.NewFileStore(cfg.Store.Path)
	default:
		return nil, apperrors.New(apperrors.CodeInvalidParam, "unsupported store driver: "+cfg.Store.Driver)
	}
}

// ProvideLedger 提供账本，启动时恢复状态快照
func ProvideLedger(ctx context.Context, cfg *config.Config, store snapshot.Store) (*ledger.Ledger, error) {
	return ledger.New(ctx, store, cfg.Credits.WelcomeGrant)
}

// ProvideSweeper 提供生日奖励定时任务
func ProvideSweeper(l *ledger.Ledger, cfg *config.Config) *ledger.BirthdaySweeper {
	return ledger.NewBirthdaySweeper(l, cfg.Birthday.SweepTime)
}

// ProvideRouter 组装路由器并注册业务路由
func ProvideRouter(
	cfg *config.Config,
	healthHandler *handler.HealthHandler,
	userHandler *handler.UserHandler,
	generationHandler *handler.GenerationHandler,
	jobHandler *handler.JobHandler,
	libraryHandler *handler.LibraryHandler,
	adminHandler *handler.AdminHandler,
) *router.Router {
	r := router.New(cfg, healthHandler)
	router.RegisterV1Routes(r.V1(), userHandler, generationHandler, jobHandler, libraryHandler, adminHandler)
	return r
}
