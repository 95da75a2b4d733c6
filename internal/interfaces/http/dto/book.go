package dto

import (
	"time"

	"book-weaver-api/internal/domain/entity"
)

// ChapterResponse 章节响应
type ChapterResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BookResponse 书籍响应
type BookResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	AuthorName    string            `json:"author_name"`
	Language      string            `json:"language"`
	Synopsis      string            `json:"synopsis"`
	CoverImageURL string            `json:"cover_image_url"`
	Chapters      []ChapterResponse `json:"chapters"`
	CreatedAt     time.Time         `json:"created_at"`
}

// BookSummaryResponse 书籍列表项（不含正文）
type BookSummaryResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	AuthorName    string    `json:"author_name"`
	Language      string    `json:"language"`
	Synopsis      string    `json:"synopsis"`
	CoverImageURL string    `json:"cover_image_url"`
	ChapterCount  int       `json:"chapter_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToBookResponse 转换书籍实体为完整响应
func ToBookResponse(b *entity.Book) BookResponse {
	chapters := make([]ChapterResponse, 0, len(b.Chapters))
	for _, ch := range b.Chapters {
		chapters = append(chapters, ChapterResponse{Title: ch.Title, Content: ch.Content})
	}
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		AuthorName:    b.AuthorName,
		Language:      b.Language,
		Synopsis:      b.Synopsis,
		CoverImageURL: b.CoverImageURL,
		Chapters:      chapters,
		CreatedAt:     b.CreatedAt,
	}
}

// ToBookSummaryResponse 转换书籍实体为列表项响应
func ToBookSummaryResponse(b *entity.Book) BookSummaryResponse {
	return BookSummaryResponse{
		ID:            b.ID,
		Title:         b.Title,
		AuthorName:    b.AuthorName,
		Language:      b.Language,
		Synopsis:      b.Synopsis,
		CoverImageURL: b.CoverImageURL,
		ChapterCount:  len(b.Chapters),
		CreatedAt:     b.CreatedAt,
	}
}

// ToBookSummaryResponses 批量转换
func ToBookSummaryResponses(books []*entity.Book) []BookSummaryResponse {
	out := make([]BookSummaryResponse, 0, len(books))
	for _, b := range books {
		out = append(out, ToBookSummaryResponse(b))
	}
	return out
}
