//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"book-weaver-api/internal/application/generation"
	"book-weaver-api/internal/application/jobs"
	"book-weaver-api/internal/application/publish"
	"book-weaver-api/internal/config"
	"book-weaver-api/internal/infrastructure/image"
	"book-weaver-api/internal/infrastructure/llm"
	"book-weaver-api/internal/interfaces/http/handler"
	workflowport "book-weaver-api/internal/workflow/port"
)

// InitializeApp 初始化整个应用
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		StorageSet,
		GenerationSet,
		RouterSet,
		ProvideSweeper,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}

// StorageSet 状态存储提供者集合
var StorageSet = wire.NewSet(
	ProvideRedisClient,
	ProvideSnapshotStore,
	ProvideLedger,
)

// GenerationSet 生成流水线提供者集合
var GenerationSet = wire.NewSet(
	jobs.NewTracker,
	llm.NewEinoFactory,
	image.NewClient,
	generation.NewOutliner,
	generation.NewProseWriter,
	generation.NewArtDirector,
	generation.NewOrchestrator,
	generation.NewService,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	wire.Bind(new(image.Generator), new(*image.Client)),
	wire.Bind(new(generation.OutlinePlanner), new(*generation.Outliner)),
	wire.Bind(new(generation.ChapterWriter), new(*generation.ProseWriter)),
	wire.Bind(new(generation.CoverDesigner), new(*generation.ArtDirector)),
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	publish.NewEpubExporter,
	publish.NewZipExporter,
	handler.NewHealthHandler,
	handler.NewUserHandler,
	handler.NewGenerationHandler,
	handler.NewJobHandler,
	handler.NewLibraryHandler,
	handler.NewAdminHandler,
	ProvideRouter,
)
