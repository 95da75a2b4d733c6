// Package entity 定义领域实体
package entity

import (
	"strings"

	apperrors "book-weaver-api/pkg/errors"
)

// 页数范围限制
const (
	MinPages = 30
	MaxPages = 300
)

// SupportedLanguages 可选的生成语言列表
var SupportedLanguages = []string{
	"English", "Italian", "Spanish", "French", "German",
	"Portuguese", "Japanese", "Russian", "Chinese (Simplified)",
}

// GenerationRequest 书籍生成请求，构造后不可变
type GenerationRequest struct {
	Description   string `json:"description"`
	Pages         int    `json:"pages"`
	CoverKeywords string `json:"cover_keywords"`
	AuthorName    string `json:"author_name"`
	Title         string `json:"title"` // 为空表示由模型自拟标题
	Language      string `json:"language"`
}

// HasUserTitle 用户是否指定了书名
func (r *GenerationRequest) HasUserTitle() bool {
	return strings.TrimSpace(r.Title) != ""
}

// Validate 校验请求参数
func (r *GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "description is required")
	}
	if strings.TrimSpace(r.AuthorName) == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "author_name is required")
	}
	if r.Pages < MinPages || r.Pages > MaxPages {
		return apperrors.New(apperrors.CodeInvalidParam, "pages must be between 30 and 300")
	}
	if !isSupportedLanguage(r.Language) {
		return apperrors.New(apperrors.CodeInvalidParam, "unsupported language: "+r.Language)
	}
	return nil
}

func isSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
