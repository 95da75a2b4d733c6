package dto

import (
	"time"

	"book-weaver-api/internal/domain/entity"
)

// ProgressResponse 进度响应
type ProgressResponse struct {
	Status  string `json:"status"`
	Current int    `json:"current,omitempty"`
	Total   int    `json:"total,omitempty"`
	Message string `json:"message,omitempty"`
}

// JobResponse 生成任务响应
type JobResponse struct {
	JobID      string           `json:"job_id"`
	UserID     string           `json:"user_id"`
	TempTitle  string           `json:"temp_title"`
	AuthorName string           `json:"author_name"`
	Progress   ProgressResponse `json:"progress"`
	CreatedAt  time.Time        `json:"created_at"`
}

// StartGenerationResponse 生成启动响应
type StartGenerationResponse struct {
	JobID string `json:"job_id"`
	Cost  int    `json:"cost"`
}

// PriceResponse 定价查询响应
type PriceResponse struct {
	Pages   int  `json:"pages"`
	Credits int  `json:"credits"`
	Priced  bool `json:"priced"`
}

// ToProgressResponse 转换进度快照
func ToProgressResponse(p entity.GenerationProgress) ProgressResponse {
	return ProgressResponse{
		Status:  string(p.Status),
		Current: p.Current,
		Total:   p.Total,
		Message: p.Message,
	}
}

// ToJobResponse 转换任务实体为响应
func ToJobResponse(j *entity.GenerationJob) JobResponse {
	return JobResponse{
		JobID:      j.ID,
		UserID:     j.UserID,
		TempTitle:  j.TempTitle,
		AuthorName: j.AuthorName,
		Progress:   ToProgressResponse(j.Progress),
		CreatedAt:  j.CreatedAt,
	}
}

// ToJobResponses 批量转换
func ToJobResponses(jobs []*entity.GenerationJob) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, ToJobResponse(j))
	}
	return out
}
