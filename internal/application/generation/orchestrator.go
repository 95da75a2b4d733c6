package generation

import (
	"context"
	"fmt"
	"time"

	"book-weaver-api/internal/domain/entity"
	apperrors "book-weaver-api/pkg/errors"
	"book-weaver-api/pkg/logger"
	"book-weaver-api/pkg/metrics"
)

// Event 流水线产生的单个进度事件。
// 终态事件（Succeeded/Failed）携带成书或错误，之后通道即关闭。
type Event struct {
	Progress entity.GenerationProgress
	Book     *entity.Book
	Err      error
}

// Terminal 是否为终态事件
func (e Event) Terminal() bool {
	return e.Progress.Status.IsTerminal()
}

// Orchestrator 按固定顺序驱动三个 Agent 完成一本书的生成。
// 它只关心生成本身，对用户、积分和存储一无所知。
type Orchestrator struct {
	outliner OutlinePlanner
	writer   ChapterWriter
	designer CoverDesigner
}

// NewOrchestrator 创建编排器
func NewOrchestrator(outliner OutlinePlanner, writer ChapterWriter, designer CoverDesigner) *Orchestrator {
	return &Orchestrator{
		outliner: outliner,
		writer:   writer,
		designer: designer,
	}
}

// Run 异步执行流水线，返回有序的事件通道。
// 事件顺序：Initializing -> Architecting Outline -> Outline Complete ->
// Writing Chapters (1..N) -> Designing Cover -> Finalizing -> Succeeded/Failed。
// 任一阶段失败都以 Failed 事件收尾，不产生部分成书。
func (o *Orchestrator) Run(ctx context.Context, req *entity.GenerationRequest) <-chan Event {
	events := make(chan Event)
	go func() {
		defer close(events)
		start := time.Now()

		book, err := o.run(ctx, req, events)
		metrics.BookGenerationDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.BookGenerationTotal.WithLabelValues("failed").Inc()
			logger.Error(ctx, "book generation failed", err)
			events <- Event{
				Progress: entity.GenerationProgress{
					Status:  entity.JobStatusFailed,
					Message: fmt.Sprintf("An error occurred: %s", apperrors.AsAppError(err).Message),
				},
				Err: err,
			}
			return
		}

		metrics.BookGenerationTotal.WithLabelValues("succeeded").Inc()
		events <- Event{
			Progress: entity.GenerationProgress{
				Status:  entity.JobStatusSucceeded,
				Message: fmt.Sprintf("%q is ready in your library.", book.Title),
			},
			Book: book,
		}
	}()
	return events
}

func (o *Orchestrator) run(ctx context.Context, req *entity.GenerationRequest, events chan<- Event) (*entity.Book, error) {
	emit := func(p entity.GenerationProgress) error {
		select {
		case events <- Event{Progress: p}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := emit(entity.GenerationProgress{
		Status:  entity.JobStatusInitializing,
		Message: "Contacting AI agents...",
	}); err != nil {
		return nil, err
	}

	if err := emit(entity.GenerationProgress{
		Status:  entity.JobStatusOutlining,
		Message: "The master architect is drafting the blueprint...",
	}); err != nil {
		return nil, err
	}

	outline, err := o.outliner.PlanOutline(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := emit(entity.GenerationProgress{
		Status:  entity.JobStatusOutlineComplete,
		Message: "Blueprint ready. The writers are gathering.",
	}); err != nil {
		return nil, err
	}

	// 字数预算以实际大纲章节数重新计算一次
	words := PlanWordsPerChapter(req.Pages, len(outline.Chapters))

	chapters := make([]*entity.Chapter, 0, len(outline.Chapters))
	for i, ch := range outline.Chapters {
		if err := emit(entity.GenerationProgress{
			Status:  entity.JobStatusWritingChapters,
			Current: i + 1,
			Total:   len(outline.Chapters),
			Message: fmt.Sprintf("Penning Chapter %d: %q", i+1, ch.Title),
		}); err != nil {
			return nil, err
		}

		content, err := o.writer.WriteChapter(ctx, ChapterInput{
			BookTitle:      outline.Title,
			Synopsis:       outline.Synopsis,
			ChapterTitle:   ch.Title,
			ChapterSummary: ch.Summary,
			Words:          words,
			Language:       req.Language,
		})
		if err != nil {
			return nil, err
		}

		chapters = append(chapters, &entity.Chapter{Title: ch.Title, Content: content})
		metrics.ChaptersWrittenTotal.Inc()
	}

	if err := emit(entity.GenerationProgress{
		Status:  entity.JobStatusDesigningCover,
		Message: "The artist is preparing the canvas...",
	}); err != nil {
		return nil, err
	}

	coverURL, err := o.designer.DesignCover(ctx, outline.Title, outline.Synopsis, req.CoverKeywords)
	if err != nil {
		return nil, err
	}

	if err := emit(entity.GenerationProgress{
		Status:  entity.JobStatusFinalizing,
		Message: "Binding the pages and adding the final touches.",
	}); err != nil {
		return nil, err
	}

	return entity.NewBook(outline.Title, req.AuthorName, req.Language, outline.Synopsis, coverURL, chapters), nil
}
