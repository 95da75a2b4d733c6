package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"book-weaver-api/internal/application/jobs"
	"book-weaver-api/internal/domain/entity"
	"book-weaver-api/internal/interfaces/http/dto"
	"book-weaver-api/internal/interfaces/http/middleware"
	apperrors "book-weaver-api/pkg/errors"
)

// JobHandler 生成任务处理器
type JobHandler struct {
	tracker *jobs.Tracker
}

// NewJobHandler 创建任务处理器
func NewJobHandler(t *jobs.Tracker) *JobHandler {
	return &JobHandler{tracker: t}
}

// ListJobs 列出当前用户的进行中任务
// @Summary 列出进行中任务
// @Tags Jobs
// @Produce json
// @Param X-User-ID header string true "用户 ID"
// @Success 200 {object} dto.Response[[]dto.JobResponse]
// @Router /v1/jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	list := h.tracker.ListByUser(middleware.GetUserID(c))
	dto.Success(c, dto.ToJobResponses(list))
}

// GetJob 查询任务进度快照
// @Summary 查询任务进度
// @Tags Jobs
// @Produce json
// @Param X-User-ID header string true "用户 ID"
// @Param jid path string true "任务 ID"
// @Success 200 {object} dto.Response[dto.JobResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/jobs/{jid} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.ownedJob(c)
	if err != nil {
		respondError(c, err, "failed to get job")
		return
	}
	dto.Success(c, dto.ToJobResponse(job))
}

// StreamJobEvents 以 SSE 推送任务进度事件
// @Summary 订阅任务进度事件流
// @Description 通过 SSE 推送任务进度，先补齐历史进度再推送实时更新，终态事件后结束
// @Tags Jobs
// @Produce text/event-stream
// @Param X-User-ID header string true "用户 ID"
// @Param jid path string true "任务 ID"
// @Success 200 "SSE stream"
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/jobs/{jid}/events [get]
func (h *JobHandler) StreamJobEvents(c *gin.Context) {
	job, err := h.ownedJob(c)
	if err != nil {
		respondError(c, err, "failed to subscribe job")
		return
	}

	updates, err := h.tracker.Subscribe(job.ID)
	if err != nil {
		// 任务可能在鉴权与订阅之间刚好结束，用快照兜底收尾
		h.streamSnapshotOnly(c, job)
		return
	}

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case u, ok := <-updates:
			if !ok {
				// 终态事件之后通道关闭
				return false
			}
			h.emit(c, u)
			return true

		case <-c.Request.Context().Done():
			// 客户端断开
			return false
		}
	})
}

// emit 将单条更新写为 SSE 事件
func (h *JobHandler) emit(c *gin.Context, u jobs.Update) {
	switch {
	case u.Err != nil:
		c.SSEvent("error", gin.H{
			"progress": dto.ToProgressResponse(u.Progress),
			"message":  u.Progress.Message,
		})
	case u.Book != nil:
		c.SSEvent("done", gin.H{
			"progress": dto.ToProgressResponse(u.Progress),
			"book":     dto.ToBookResponse(u.Book),
		})
	default:
		c.SSEvent("progress", dto.ToProgressResponse(u.Progress))
	}
}

// streamSnapshotOnly 任务已不可订阅时，推送最后一次进度快照并结束流
func (h *JobHandler) streamSnapshotOnly(c *gin.Context, job *entity.GenerationJob) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	sent := false
	c.Stream(func(w io.Writer) bool {
		if sent {
			return false
		}
		sent = true
		c.SSEvent("progress", dto.ToProgressResponse(job.Progress))
		return true
	})
}

// ownedJob 查询任务并校验归属，非本人任务按不存在处理
func (h *JobHandler) ownedJob(c *gin.Context) (*entity.GenerationJob, error) {
	job, err := h.tracker.Get(dto.BindJobID(c))
	if err != nil {
		return nil, err
	}
	if job.UserID != middleware.GetUserID(c) {
		return nil, apperrors.ErrJobNotFound
	}
	return job, nil
}
