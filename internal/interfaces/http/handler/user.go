// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"book-weaver-api/internal/application/ledger"
	"book-weaver-api/internal/interfaces/http/dto"
)

// UserHandler 用户处理器
type UserHandler struct {
	ledger *ledger.Ledger
}

// NewUserHandler 创建用户处理器
func NewUserHandler(l *ledger.Ledger) *UserHandler {
	return &UserHandler{ledger: l}
}

// Register 注册新用户
// @Summary 注册新用户
// @Description 创建用户并发放欢迎积分
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.RegisterUserRequest true "注册请求"
// @Success 201 {object} dto.Response[dto.UserResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.ledger.RegisterUser(c.Request.Context(), req.Name, req.BirthDate)
	if err != nil {
		respondError(c, err, "failed to register user")
		return
	}
	dto.Created(c, dto.ToUserResponse(user))
}

// ListUsers 列出全部用户
// @Summary 列出全部用户
// @Tags Users
// @Produce json
// @Success 200 {object} dto.Response[[]dto.UserResponse]
// @Router /v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users := h.ledger.ListUsers()
	dto.Success(c, dto.ToUserResponses(users))
}

// GetUser 获取用户详情
// @Summary 获取用户详情
// @Tags Users
// @Produce json
// @Param uid path string true "用户 ID"
// @Success 200 {object} dto.Response[dto.UserResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/users/{uid} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.ledger.GetUser(dto.BindUserID(c))
	if err != nil {
		respondError(c, err, "failed to get user")
		return
	}
	dto.Success(c, dto.ToUserResponse(user))
}

// PurchaseCredits 购买积分
// @Summary 购买积分
// @Description 为指定用户充值积分
// @Tags Users
// @Accept json
// @Produce json
// @Param uid path string true "用户 ID"
// @Param request body dto.PurchaseCreditsRequest true "购买请求"
// @Success 200 {object} dto.Response[dto.UserResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/users/{uid}/credits/purchase [post]
func (h *UserHandler) PurchaseCredits(c *gin.Context) {
	var req dto.PurchaseCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.ledger.Credit(c.Request.Context(), dto.BindUserID(c), req.Credits, "purchase")
	if err != nil {
		respondError(c, err, "failed to purchase credits")
		return
	}
	dto.Success(c, dto.ToUserResponse(user))
}
