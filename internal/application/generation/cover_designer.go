package generation

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"book-weaver-api/internal/infrastructure/image"
	wfchain "book-weaver-api/internal/workflow/chain"
	wfmodel "book-weaver-api/internal/workflow/model"
	workflowport "book-weaver-api/internal/workflow/port"
	apperrors "book-weaver-api/pkg/errors"
	"book-weaver-api/pkg/logger"
	"book-weaver-api/pkg/metrics"
)

// ArtDirector 封面 Agent：先用对话模型生成图像提示词，再调用图像服务渲染封面
type ArtDirector struct {
	chain     *wfchain.CoverPromptChain
	generator image.Generator
}

// NewArtDirector 创建封面 Agent
func NewArtDirector(factory workflowport.ChatModelFactory, generator image.Generator) *ArtDirector {
	return &ArtDirector{
		chain:     wfchain.NewCoverPromptChain(factory),
		generator: generator,
	}
}

// DesignCover 生成封面图并返回 data URI
func (d *ArtDirector) DesignCover(ctx context.Context, title, synopsis, keywords string) (string, error) {
	temp := float32(0.8)
	in := &wfmodel.CoverPromptInput{
		Title:       title,
		Synopsis:    synopsis,
		Keywords:    keywords,
		Temperature: &temp,
	}

	start := time.Now()
	outMsg, err := d.chain.Invoke(ctx, in)
	metrics.LLMCallDuration.WithLabelValues("cover_prompt").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues("cover_prompt", "error").Inc()
		return "", apperrors.Wrap(err, apperrors.CodeLLMProviderError, "cover prompt generation failed")
	}
	metrics.LLMCallTotal.WithLabelValues("cover_prompt", "success").Inc()
	recordUsage(ctx, outMsg, "cover_prompt")

	imagePrompt := strings.TrimSpace(outMsg.Content)
	if imagePrompt == "" {
		return "", apperrors.New(apperrors.CodeContractViolation,
			"the AI failed to produce a cover image prompt")
	}

	logger.Debug(ctx, "cover image prompt ready", "prompt_chars", len(imagePrompt))
	return d.generator.GenerateCover(ctx, imagePrompt)
}

// recordUsage 上报 LLM Token 用量指标
func recordUsage(ctx context.Context, outMsg *schema.Message, stage string) {
	if outMsg == nil || outMsg.ResponseMeta == nil || outMsg.ResponseMeta.Usage == nil {
		return
	}
	usage := outMsg.ResponseMeta.Usage
	metrics.LLMTokensUsed.WithLabelValues(stage, "prompt").Add(float64(usage.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues(stage, "completion").Add(float64(usage.CompletionTokens))
	logger.Debug(ctx, "llm usage recorded",
		"stage", stage,
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
	)
}
