package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	wfnode "book-weaver-api/internal/workflow/node"
	apperrors "book-weaver-api/pkg/errors"
)

// ParseOutline 从模型输出中解析大纲并做结构校验。
// 任何解析或校验失败都视为生成契约违约，不会自动重试。
func ParseOutline(rawText string) (*Outline, error) {
	jsonText := wfnode.ExtractJSONObject(rawText)
	if strings.TrimSpace(jsonText) == "" {
		return nil, apperrors.New(apperrors.CodeContractViolation,
			"the AI failed to generate a valid book outline").WithDetail("empty outline output")
	}

	var outline Outline
	if err := json.Unmarshal([]byte(jsonText), &outline); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeContractViolation,
			"the AI failed to generate a valid book outline")
	}

	if err := validateOutline(&outline); err != nil {
		return nil, err
	}
	return &outline, nil
}

func validateOutline(o *Outline) error {
	var issues []string
	if strings.TrimSpace(o.Title) == "" {
		issues = append(issues, "title is required")
	}
	if strings.TrimSpace(o.Synopsis) == "" {
		issues = append(issues, "synopsis is required")
	}
	if len(o.Chapters) == 0 {
		issues = append(issues, "outline must contain at least one chapter")
	}
	for i, ch := range o.Chapters {
		if strings.TrimSpace(ch.Title) == "" {
			issues = append(issues, fmt.Sprintf("outline[%d].chapter_title is required", i))
		}
	}
	if len(issues) > 0 {
		return apperrors.New(apperrors.CodeContractViolation,
			"the AI failed to generate a valid book outline").
			WithDetail(strings.Join(issues, "; "))
	}
	return nil
}
