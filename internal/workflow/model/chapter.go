package model

// ChapterGenerateInput 单章正文生成输入
type ChapterGenerateInput struct {
	BookTitle string
	Synopsis  string

	ChapterTitle   string
	ChapterSummary string

	TargetWordCount int
	Language        string

	Provider string
	Model    string

	Temperature *float32
	MaxTokens   *int
}
