// Package llm 提供基于 Eino 的 ChatModel 构建
package llm

import (
	"context"
	"fmt"
	"sync"

	"book-weaver-api/internal/config"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// EinoFactory 按提供商名称惰性构建并缓存 ChatModel。
// 大纲、正文、封面提示词三条链都经由它取模型。
type EinoFactory struct {
	cfg   *config.LLMConfig
	mu    sync.RWMutex
	cache map[string]model.BaseChatModel
}

// NewEinoFactory 创建 ChatModel 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		cfg:   &cfg.LLM,
		cache: make(map[string]model.BaseChatModel),
	}
}

// Get 返回指定提供商的 ChatModel，空名称走默认提供商
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if name == "" {
		name = f.cfg.DefaultProvider
	}

	f.mu.RLock()
	cached, ok := f.cache[name]
	f.mu.RUnlock()
	if ok {
		return cached, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if cached, ok = f.cache[name]; ok {
		return cached, nil
	}

	built, err := f.build(ctx, name)
	if err != nil {
		return nil, err
	}
	f.cache[name] = built
	return built, nil
}

func (f *EinoFactory) build(ctx context.Context, name string) (model.BaseChatModel, error) {
	providerCfg, ok := f.cfg.Providers[name]
	if !ok {
		return nil, fmt.Errorf("llm provider %q not configured", name)
	}

	temperature := float32(providerCfg.Temperature)
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      providerCfg.APIKey,
		BaseURL:     providerCfg.BaseURL,
		Model:       providerCfg.Model,
		MaxTokens:   &providerCfg.MaxTokens,
		Temperature: &temperature,
		Timeout:     providerCfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build chat model for provider %q: %w", name, err)
	}
	return chatModel, nil
}
