package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"book-weaver-api/internal/application/generation"
	"book-weaver-api/internal/domain/entity"
	"book-weaver-api/internal/interfaces/http/dto"
	"book-weaver-api/internal/interfaces/http/middleware"
	apperrors "book-weaver-api/pkg/errors"
)

// GenerationHandler 书籍生成处理器
type GenerationHandler struct {
	service *generation.Service
}

// NewGenerationHandler 创建生成处理器
func NewGenerationHandler(s *generation.Service) *GenerationHandler {
	return &GenerationHandler{service: s}
}

// GetPrice 查询页数对应的积分价格
// @Summary 查询生成价格
// @Description 按当前定价档位计算指定页数的积分成本
// @Tags Generation
// @Produce json
// @Param pages query int true "页数"
// @Success 200 {object} dto.Response[dto.PriceResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/generation/price [get]
func (h *GenerationHandler) GetPrice(c *gin.Context) {
	pages, err := strconv.Atoi(c.Query("pages"))
	if err != nil || pages <= 0 {
		dto.BadRequest(c, "pages must be a positive integer")
		return
	}

	cost, err := h.service.PriceRequest(pages)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeUnpriceable) {
			dto.Success(c, dto.PriceResponse{Pages: pages, Priced: false})
			return
		}
		respondError(c, err, "failed to price request")
		return
	}
	dto.Success(c, dto.PriceResponse{Pages: pages, Credits: cost, Priced: true})
}

// StartGeneration 发起书籍生成
// @Summary 发起书籍生成
// @Description 校验请求并扣除积分，随后异步执行生成流水线
// @Tags Generation
// @Accept json
// @Produce json
// @Param X-User-ID header string true "用户 ID"
// @Param request body dto.GenerateBookRequest true "生成请求"
// @Success 202 {object} dto.Response[dto.StartGenerationResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/generation [post]
func (h *GenerationHandler) StartGeneration(c *gin.Context) {
	var req dto.GenerateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	genReq := &entity.GenerationRequest{
		Description:   req.Description,
		Pages:         req.Pages,
		CoverKeywords: req.CoverKeywords,
		AuthorName:    req.AuthorName,
		Title:         req.Title,
		Language:      req.Language,
	}

	jobID, cost, err := h.service.Start(c.Request.Context(), middleware.GetUserID(c), genReq)
	if err != nil {
		respondError(c, err, "failed to start generation")
		return
	}
	dto.Accepted(c, dto.StartGenerationResponse{JobID: jobID, Cost: cost})
}
