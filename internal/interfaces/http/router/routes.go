// Package router 提供 HTTP 路由配置
package router

import (
	"book-weaver-api/internal/interfaces/http/handler"
	"book-weaver-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	userHandler *handler.UserHandler,
	generationHandler *handler.GenerationHandler,
	jobHandler *handler.JobHandler,
	libraryHandler *handler.LibraryHandler,
	adminHandler *handler.AdminHandler,
) {
	// 用户与积分
	users := v1.Group("/users")
	{
		users.POST("", userHandler.Register)
		users.GET("", userHandler.ListUsers)
		users.GET("/:uid", userHandler.GetUser)
		users.POST("/:uid/credits/purchase", userHandler.PurchaseCredits)
	}

	// 书籍生成
	generation := v1.Group("/generation")
	{
		generation.GET("/price", generationHandler.GetPrice)
		generation.POST("", middleware.CurrentUser(), generationHandler.StartGeneration)
	}

	// 任务进度，用户维度
	jobs := v1.Group("/jobs", middleware.CurrentUser())
	{
		jobs.GET("", jobHandler.ListJobs)
		jobs.GET("/:jid", jobHandler.GetJob)
		jobs.GET("/:jid/events", jobHandler.StreamJobEvents) // SSE
	}

	// 书库
	books := v1.Group("/books", middleware.CurrentUser())
	{
		books.GET("", libraryHandler.ListBooks)
		books.GET("/:bid", libraryHandler.GetBook)
		books.DELETE("/:bid", libraryHandler.DeleteBook)
		books.GET("/:bid/export", libraryHandler.ExportBook)
	}

	// 管理配置
	admin := v1.Group("/admin")
	{
		admin.GET("/config", adminHandler.GetConfig)
		admin.PUT("/config", adminHandler.UpdateBirthdayBonus)
		admin.POST("/tiers", adminHandler.AddTier)
		admin.DELETE("/tiers/:tid", adminHandler.RemoveTier)
		admin.POST("/credits/grant", adminHandler.GrantCredits)
		admin.POST("/birthdays/sweep", adminHandler.SweepBirthdays)
	}
}
