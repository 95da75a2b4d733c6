package model

// OutlineGenerateInput 书籍大纲生成输入
type OutlineGenerateInput struct {
	Description     string
	Pages           int
	ChapterCount    int
	WordsPerChapter int
	Language        string

	// UserTitle 非空时指示模型采用该书名
	UserTitle string

	Provider string
	Model    string

	Temperature *float32
	MaxTokens   *int
}
