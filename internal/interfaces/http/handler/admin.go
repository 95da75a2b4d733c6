package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"book-weaver-api/internal/application/ledger"
	"book-weaver-api/internal/domain/entity"
	"book-weaver-api/internal/interfaces/http/dto"
)

// AdminHandler 管理配置处理器
type AdminHandler struct {
	ledger *ledger.Ledger
}

// NewAdminHandler 创建管理配置处理器
func NewAdminHandler(l *ledger.Ledger) *AdminHandler {
	return &AdminHandler{ledger: l}
}

// GetConfig 获取管理配置
// @Summary 获取管理配置
// @Description 返回定价档位与生日奖励配置
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.Response[dto.AdminConfigResponse]
// @Router /v1/admin/config [get]
func (h *AdminHandler) GetConfig(c *gin.Context) {
	dto.Success(c, dto.ToAdminConfigResponse(h.ledger.AdminConfig()))
}

// UpdateBirthdayBonus 更新生日奖励配置
// @Summary 更新生日奖励配置
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.UpdateBirthdayBonusRequest true "生日奖励配置"
// @Success 200 {object} dto.Response[dto.AdminConfigResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/admin/config [put]
func (h *AdminHandler) UpdateBirthdayBonus(c *gin.Context) {
	var req dto.UpdateBirthdayBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	bonus := entity.BirthdayBonusConfig{
		Enabled:       req.Enabled,
		Credits:       req.Credits,
		EmailTemplate: req.EmailTemplate,
	}
	if err := h.ledger.UpdateBirthdayBonus(c.Request.Context(), bonus); err != nil {
		respondError(c, err, "failed to update birthday bonus")
		return
	}
	dto.Success(c, dto.ToAdminConfigResponse(h.ledger.AdminConfig()))
}

// AddTier 新增定价档位
// @Summary 新增定价档位
// @Description 新增档位后按页数上限升序排列，页数上限不允许重复
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.AddTierRequest true "档位定义"
// @Success 201 {object} dto.Response[dto.CostTierResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/admin/tiers [post]
func (h *AdminHandler) AddTier(c *gin.Context) {
	var req dto.AddTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tier, err := h.ledger.AddTier(c.Request.Context(), req.MaxPages, req.Credits)
	if err != nil {
		respondError(c, err, "failed to add cost tier")
		return
	}
	dto.Created(c, dto.ToCostTierResponse(tier))
}

// RemoveTier 删除定价档位
// @Summary 删除定价档位
// @Tags Admin
// @Produce json
// @Param tid path string true "档位 ID"
// @Success 204 {object} dto.Response[any]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/admin/tiers/{tid} [delete]
func (h *AdminHandler) RemoveTier(c *gin.Context) {
	if err := h.ledger.RemoveTier(c.Request.Context(), dto.BindTierID(c)); err != nil {
		respondError(c, err, "failed to remove cost tier")
		return
	}
	dto.NoContent(c)
}

// GrantCredits 管理员手动发放积分
// @Summary 手动发放积分
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.GrantCreditsRequest true "发放请求"
// @Success 200 {object} dto.Response[dto.UserResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/admin/credits/grant [post]
func (h *AdminHandler) GrantCredits(c *gin.Context) {
	var req dto.GrantCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.ledger.Credit(c.Request.Context(), req.UserID, req.Credits, "admin_grant")
	if err != nil {
		respondError(c, err, "failed to grant credits")
		return
	}
	dto.Success(c, dto.ToUserResponse(user))
}

// SweepBirthdays 手动触发生日奖励发放
// @Summary 触发生日奖励发放
// @Description 对今天过生日的用户发放奖励积分，返回逐条审计记录
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.Response[dto.SweepResponse]
// @Router /v1/admin/birthdays/sweep [post]
func (h *AdminHandler) SweepBirthdays(c *gin.Context) {
	results, err := h.ledger.SweepBirthdays(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err, "failed to sweep birthdays")
		return
	}
	dto.Success(c, dto.SweepResponse{Results: results})
}
