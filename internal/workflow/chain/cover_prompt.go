package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	wfmodel "book-weaver-api/internal/workflow/model"
	workflowport "book-weaver-api/internal/workflow/port"
	workflowprompt "book-weaver-api/internal/workflow/prompt"
)

// CoverPromptChain 根据书名与简介生成封面图提示词
type CoverPromptChain struct {
	factory workflowport.ChatModelFactory
}

func NewCoverPromptChain(factory workflowport.ChatModelFactory) *CoverPromptChain {
	return &CoverPromptChain{factory: factory}
}

func (c *CoverPromptChain) Invoke(ctx context.Context, in *wfmodel.CoverPromptInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	chatModel, err := c.factory.Get(ctx, strings.TrimSpace(in.Provider))
	if err != nil {
		return nil, err
	}

	msgs, err := formatCoverPromptMessages(ctx, in)
	if err != nil {
		return nil, err
	}

	outMsg, err := chatModel.Generate(ctx, msgs, buildCoverPromptModelOptions(in)...)
	if err != nil {
		return nil, err
	}
	if outMsg == nil {
		return nil, fmt.Errorf("empty llm response")
	}
	return outMsg, nil
}

var coverPromptRegistry = workflowprompt.NewRegistry()

func formatCoverPromptMessages(ctx context.Context, in *wfmodel.CoverPromptInput) ([]*schema.Message, error) {
	tpl, err := coverPromptRegistry.ChatTemplate(workflowprompt.PromptCoverPromptV1)
	if err != nil {
		return nil, err
	}

	keywordsBlock := ""
	if strings.TrimSpace(in.Keywords) != "" {
		keywordsBlock = fmt.Sprintf(
			"The user has provided the following style preferences or keywords to inspire the cover. "+
				"Make sure to incorporate these ideas into your prompt: %q",
			strings.TrimSpace(in.Keywords),
		)
	}

	vars := map[string]any{
		"title":          strings.TrimSpace(in.Title),
		"synopsis":       strings.TrimSpace(in.Synopsis),
		"keywords_block": keywordsBlock,
	}
	return tpl.Format(ctx, vars)
}

func buildCoverPromptModelOptions(in *wfmodel.CoverPromptInput) []model.Option {
	opts := make([]model.Option, 0, 4)
	if in == nil {
		return opts
	}
	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}
	if in.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*in.MaxTokens))
	}
	if strings.TrimSpace(in.Model) != "" {
		opts = append(opts, model.WithModel(strings.TrimSpace(in.Model)))
	}
	return opts
}
