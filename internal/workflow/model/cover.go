package model

// CoverPromptInput 封面图提示词生成输入
type CoverPromptInput struct {
	Title    string
	Synopsis string
	Keywords string

	Provider string
	Model    string

	Temperature *float32
	MaxTokens   *int
}
