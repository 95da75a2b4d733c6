// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus 生成任务状态
type JobStatus string

const (
	JobStatusInitializing    JobStatus = "Initializing"
	JobStatusOutlining       JobStatus = "Architecting Outline"
	JobStatusOutlineComplete JobStatus = "Outline Complete"
	JobStatusWritingChapters JobStatus = "Writing Chapters"
	JobStatusDesigningCover  JobStatus = "Designing Cover"
	JobStatusFinalizing      JobStatus = "Finalizing"
	JobStatusSucceeded       JobStatus = "Succeeded"
	JobStatusFailed          JobStatus = "Error"
)

// IsTerminal 是否为终态
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed
}

// GenerationProgress 生成进度快照
type GenerationProgress struct {
	Status  JobStatus `json:"status"`
	Current int       `json:"current,omitempty"` // 当前章节序号 (1-based)
	Total   int       `json:"total,omitempty"`   // 章节总数
	Message string    `json:"message,omitempty"`
}

// GenerationJob 进行中的生成任务
type GenerationJob struct {
	ID         string             `json:"job_id"`
	UserID     string             `json:"user_id"`
	TempTitle  string             `json:"temp_title"` // 完成前展示用的临时书名
	AuthorName string             `json:"author_name"`
	Progress   GenerationProgress `json:"progress"`
	CreatedAt  time.Time          `json:"created_at"`
}

// NewGenerationJob 创建新的生成任务
func NewGenerationJob(userID, tempTitle, authorName string) *GenerationJob {
	return &GenerationJob{
		ID:         uuid.New().String(),
		UserID:     userID,
		TempTitle:  tempTitle,
		AuthorName: authorName,
		Progress: GenerationProgress{
			Status:  JobStatusInitializing,
			Message: "Contacting AI agents...",
		},
		CreatedAt: time.Now(),
	}
}

// UpdateProgress 更新任务进度
func (j *GenerationJob) UpdateProgress(p GenerationProgress) {
	j.Progress = p
}
