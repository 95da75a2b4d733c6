package generation

import (
	"context"
	"strings"
	"time"

	wfchain "book-weaver-api/internal/workflow/chain"
	wfmodel "book-weaver-api/internal/workflow/model"
	workflowport "book-weaver-api/internal/workflow/port"
	apperrors "book-weaver-api/pkg/errors"
	"book-weaver-api/pkg/metrics"
)

// ProseWriter 章节 Agent：为单章生成正文，除非空外不做结构校验
type ProseWriter struct {
	chain *wfchain.ChapterChain
}

// NewProseWriter 创建章节 Agent
func NewProseWriter(factory workflowport.ChatModelFactory) *ProseWriter {
	return &ProseWriter{chain: wfchain.NewChapterChain(factory)}
}

// WriteChapter 生成单章正文
func (w *ProseWriter) WriteChapter(ctx context.Context, in ChapterInput) (string, error) {
	temp := float32(0.6)
	chainIn := &wfmodel.ChapterGenerateInput{
		BookTitle:       in.BookTitle,
		Synopsis:        in.Synopsis,
		ChapterTitle:    in.ChapterTitle,
		ChapterSummary:  in.ChapterSummary,
		TargetWordCount: in.Words,
		Language:        in.Language,
		Temperature:     &temp,
	}

	start := time.Now()
	outMsg, err := w.chain.Invoke(ctx, chainIn)
	metrics.LLMCallDuration.WithLabelValues("chapter").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues("chapter", "error").Inc()
		return "", apperrors.Wrap(err, apperrors.CodeLLMProviderError, "chapter generation failed")
	}
	metrics.LLMCallTotal.WithLabelValues("chapter", "success").Inc()
	recordUsage(ctx, outMsg, "chapter")

	content := strings.TrimSpace(outMsg.Content)
	if content == "" {
		return "", apperrors.New(apperrors.CodeContractViolation,
			"the AI failed to produce chapter content")
	}
	return content, nil
}
