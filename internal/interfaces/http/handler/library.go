package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"book-weaver-api/internal/application/ledger"
	"book-weaver-api/internal/application/publish"
	"book-weaver-api/internal/interfaces/http/dto"
	"book-weaver-api/internal/interfaces/http/middleware"
)

// LibraryHandler 书库处理器
type LibraryHandler struct {
	ledger *ledger.Ledger
	epub   *publish.EpubExporter
	zip    *publish.ZipExporter
}

// NewLibraryHandler 创建书库处理器
func NewLibraryHandler(l *ledger.Ledger, e *publish.EpubExporter, z *publish.ZipExporter) *LibraryHandler {
	return &LibraryHandler{ledger: l, epub: e, zip: z}
}

// ListBooks 列出当前用户书库
// @Summary 列出书库
// @Description 按入库时间倒序返回当前用户的全部书籍摘要
// @Tags Library
// @Produce json
// @Param X-User-ID header string true "用户 ID"
// @Success 200 {object} dto.Response[[]dto.BookSummaryResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/books [get]
func (h *LibraryHandler) ListBooks(c *gin.Context) {
	books, err := h.ledger.ListBooks(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "failed to list books")
		return
	}
	dto.Success(c, dto.ToBookSummaryResponses(books))
}

// GetBook 获取书籍全文
// @Summary 获取书籍详情
// @Tags Library
// @Produce json
// @Param X-User-ID header string true "用户 ID"
// @Param bid path string true "书籍 ID"
// @Success 200 {object} dto.Response[dto.BookResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/books/{bid} [get]
func (h *LibraryHandler) GetBook(c *gin.Context) {
	book, err := h.ledger.GetBook(middleware.GetUserID(c), dto.BindBookID(c))
	if err != nil {
		respondError(c, err, "failed to get book")
		return
	}
	dto.Success(c, dto.ToBookResponse(book))
}

// DeleteBook 从书库移除书籍
// @Summary 删除书籍
// @Description 移除指定书籍，书籍不存在时同样返回成功
// @Tags Library
// @Produce json
// @Param X-User-ID header string true "用户 ID"
// @Param bid path string true "书籍 ID"
// @Success 204 {object} dto.Response[any]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/books/{bid} [delete]
func (h *LibraryHandler) DeleteBook(c *gin.Context) {
	if err := h.ledger.RemoveBook(c.Request.Context(), middleware.GetUserID(c), dto.BindBookID(c)); err != nil {
		respondError(c, err, "failed to delete book")
		return
	}
	dto.NoContent(c)
}

// ExportBook 导出书籍文件
// @Summary 导出书籍
// @Description 将书籍导出为 epub 或 zip 文件并作为附件下载
// @Tags Library
// @Produce application/octet-stream
// @Param X-User-ID header string true "用户 ID"
// @Param bid path string true "书籍 ID"
// @Param format query string false "导出格式 epub|zip" default(epub)
// @Success 200 "文件内容"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/books/{bid}/export [get]
func (h *LibraryHandler) ExportBook(c *gin.Context) {
	book, err := h.ledger.GetBook(middleware.GetUserID(c), dto.BindBookID(c))
	if err != nil {
		respondError(c, err, "failed to export book")
		return
	}

	format := c.DefaultQuery("format", "epub")
	var (
		data        []byte
		contentType string
	)
	switch format {
	case "epub":
		data, err = h.epub.Export(c.Request.Context(), book)
		contentType = "application/epub+zip"
	case "zip":
		data, err = h.zip.Export(c.Request.Context(), book)
		contentType = "application/zip"
	default:
		dto.BadRequest(c, "unsupported export format: "+format)
		return
	}
	if err != nil {
		respondError(c, err, "failed to export book")
		return
	}

	filename := fmt.Sprintf("%s.%s", exportBasename(book.Title), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// exportBasename 生成下载文件名主体，标题为空时退回书籍通称
func exportBasename(title string) string {
	name := publish.SanitizeFilename(title)
	if name == "" {
		name = "book"
	}
	return name
}
