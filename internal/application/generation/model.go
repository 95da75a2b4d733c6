// Package generation 实现书籍生成流水线：大纲、章节、封面三个 Agent 与编排器
package generation

import (
	"context"

	"book-weaver-api/internal/domain/entity"
)

// OutlineChapter 大纲中的单章条目
type OutlineChapter struct {
	Title   string `json:"chapter_title"`
	Summary string `json:"chapter_summary"`
}

// Outline 大纲 Agent 的结构化输出
type Outline struct {
	Title    string           `json:"title"`
	Synopsis string           `json:"synopsis"`
	Chapters []OutlineChapter `json:"outline"`
}

// OutlinePlanner 大纲 Agent 端口
type OutlinePlanner interface {
	PlanOutline(ctx context.Context, req *entity.GenerationRequest) (*Outline, error)
}

// ChapterInput 单章写作输入
type ChapterInput struct {
	BookTitle      string
	Synopsis       string
	ChapterTitle   string
	ChapterSummary string
	Words          int
	Language       string
}

// ChapterWriter 章节 Agent 端口
type ChapterWriter interface {
	WriteChapter(ctx context.Context, in ChapterInput) (string, error)
}

// CoverDesigner 封面 Agent 端口
type CoverDesigner interface {
	// DesignCover 返回封面图的 data URI
	DesignCover(ctx context.Context, title, synopsis, keywords string) (string, error)
}

// 字数规划常量
const wordsPerPage = 300

// PlanChapterCount 由页数推导章节数
func PlanChapterCount(pages int) int {
	n := (pages + 5) / 10 // round(pages/10)
	if n < 5 {
		return 5
	}
	return n
}

// PlanWordsPerChapter 由页数与章节数推导单章目标字数
func PlanWordsPerChapter(pages, chapterCount int) int {
	if chapterCount <= 0 {
		return 0
	}
	total := pages * wordsPerPage
	return (total + chapterCount/2) / chapterCount // round
}
