// Package middleware 提供 HTTP 中间件
package middleware

import (
	"net/http"

	"book-weaver-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDHeader 标识当前用户的请求头。
	// 这只是会话层面的标识约定，不提供任何认证保证。
	UserIDHeader = "X-User-ID"

	// ContextUserIDKey Gin Context 中的用户 ID 键
	ContextUserIDKey = "user_id"
)

// CurrentUser 从请求头提取当前用户 ID 并注入上下文，缺失时拒绝请求
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    http.StatusBadRequest,
				"message": "X-User-ID header is required",
			})
			return
		}

		c.Set(ContextUserIDKey, userID)

		ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserID 从 Gin Context 读取当前用户 ID
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}
