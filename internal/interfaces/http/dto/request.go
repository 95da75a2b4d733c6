package dto

import (
	"github.com/gin-gonic/gin"
)

// RegisterUserRequest 注册用户请求
type RegisterUserRequest struct {
	Name      string `json:"name" binding:"required"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD，可选
}

// PurchaseCreditsRequest 购买积分请求
type PurchaseCreditsRequest struct {
	Credits int `json:"credits" binding:"required,gt=0"`
}

// GenerateBookRequest 书籍生成请求
type GenerateBookRequest struct {
	Description   string `json:"description" binding:"required"`
	Pages         int    `json:"pages" binding:"required"`
	CoverKeywords string `json:"cover_keywords"`
	AuthorName    string `json:"author_name" binding:"required"`
	Title         string `json:"title"`
	Language      string `json:"language" binding:"required"`
}

// AddTierRequest 新增定价档位请求
type AddTierRequest struct {
	MaxPages int `json:"max_pages" binding:"required,gt=0"`
	Credits  int `json:"credits" binding:"required,gt=0"`
}

// UpdateBirthdayBonusRequest 更新生日奖励配置请求
type UpdateBirthdayBonusRequest struct {
	Enabled       bool   `json:"enabled"`
	Credits       int    `json:"credits" binding:"gte=0"`
	EmailTemplate string `json:"email_template" binding:"required"`
}

// GrantCreditsRequest 管理员手动发放积分请求
type GrantCreditsRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Credits int    `json:"credits" binding:"required,gt=0"`
}

// BindUserID 从路径参数读取用户 ID
func BindUserID(c *gin.Context) string {
	return c.Param("uid")
}

// BindJobID 从路径参数读取任务 ID
func BindJobID(c *gin.Context) string {
	return c.Param("jid")
}

// BindBookID 从路径参数读取书籍 ID
func BindBookID(c *gin.Context) string {
	return c.Param("bid")
}

// BindTierID 从路径参数读取档位 ID
func BindTierID(c *gin.Context) string {
	return c.Param("tid")
}
