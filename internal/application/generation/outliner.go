package generation

import (
	"context"
	"strings"
	"time"

	"book-weaver-api/internal/domain/entity"
	wfchain "book-weaver-api/internal/workflow/chain"
	wfmodel "book-weaver-api/internal/workflow/model"
	workflowport "book-weaver-api/internal/workflow/port"
	apperrors "book-weaver-api/pkg/errors"
	"book-weaver-api/pkg/logger"
	"book-weaver-api/pkg/metrics"
)

// Outliner 大纲 Agent：规划章节数与字数预算，请求结构化大纲
type Outliner struct {
	chain *wfchain.OutlineChain
}

// NewOutliner 创建大纲 Agent
func NewOutliner(factory workflowport.ChatModelFactory) *Outliner {
	return &Outliner{chain: wfchain.NewOutlineChain(factory)}
}

// PlanOutline 生成书籍大纲。用户指定了书名时，无论模型输出什么都强制采用用户书名。
func (o *Outliner) PlanOutline(ctx context.Context, req *entity.GenerationRequest) (*Outline, error) {
	chapterCount := PlanChapterCount(req.Pages)
	wordsPerChapter := PlanWordsPerChapter(req.Pages, chapterCount)

	temp := float32(0.7)
	in := &wfmodel.OutlineGenerateInput{
		Description:     req.Description,
		Pages:           req.Pages,
		ChapterCount:    chapterCount,
		WordsPerChapter: wordsPerChapter,
		Language:        req.Language,
		UserTitle:       strings.TrimSpace(req.Title),
		Temperature:     &temp,
	}

	start := time.Now()
	outMsg, err := o.chain.Invoke(ctx, in)
	metrics.LLMCallDuration.WithLabelValues("outline").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues("outline", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeLLMProviderError, "outline generation failed")
	}
	metrics.LLMCallTotal.WithLabelValues("outline", "success").Inc()
	recordUsage(ctx, outMsg, "outline")

	outline, err := ParseOutline(outMsg.Content)
	if err != nil {
		logger.Warn(ctx, "outline output rejected", "error", err.Error())
		return nil, err
	}

	applyUserTitle(outline, req)
	return outline, nil
}

// applyUserTitle 用户书名优先，模型输出仅作参考
func applyUserTitle(outline *Outline, req *entity.GenerationRequest) {
	if req.HasUserTitle() {
		outline.Title = strings.TrimSpace(req.Title)
	}
}
