// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chapter 书籍章节
type Chapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Book 已完成的书籍，创建后不可变
type Book struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	AuthorName    string     `json:"author_name"`
	Language      string     `json:"language"`
	Synopsis      string     `json:"synopsis"`
	CoverImageURL string     `json:"cover_image_url"` // data URI 或可解析的 URL
	Chapters      []*Chapter `json:"chapters"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewBook 创建新书
func NewBook(title, authorName, language, synopsis, coverImageURL string, chapters []*Chapter) *Book {
	return &Book{
		ID:            uuid.New().String(),
		Title:         title,
		AuthorName:    authorName,
		Language:      language,
		Synopsis:      synopsis,
		CoverImageURL: coverImageURL,
		Chapters:      chapters,
		CreatedAt:     time.Now(),
	}
}
