// Package publish 将成书导出为可下载的文档格式
package publish

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	epub "github.com/go-shiori/go-epub"
	"github.com/vincent-petithory/dataurl"

	"book-weaver-api/internal/domain/entity"
	apperrors "book-weaver-api/pkg/errors"
	"book-weaver-api/pkg/logger"
	"book-weaver-api/pkg/metrics"
)

// EpubExporter 生成 EPUB 文件
type EpubExporter struct{}

func NewEpubExporter() *EpubExporter {
	return &EpubExporter{}
}

// Export 将一本书渲染为 EPUB 并返回文件内容
func (x *EpubExporter) Export(ctx context.Context, book *entity.Book) ([]byte, error) {
	e, err := epub.NewEpub(book.Title)
	if err != nil {
		metrics.BookExportTotal.WithLabelValues("epub", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeExportError, "failed to create epub")
	}
	e.SetAuthor(book.AuthorName)
	e.SetLang(languageTag(book.Language))
	e.SetDescription(book.Synopsis)

	// 临时目录同时承载封面文件与产物，go-epub 在 Write 时才读取图片
	tmpDir, err := os.MkdirTemp("", "book-weaver-epub-")
	if err != nil {
		metrics.BookExportTotal.WithLabelValues("epub", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeExportError, "failed to create temp dir")
	}
	defer os.RemoveAll(tmpDir)

	coverTag := ""
	if cover, err := embedCover(e, book.CoverImageURL, tmpDir); err != nil {
		// 封面嵌入失败不阻断导出
		logger.Warn(ctx, "failed to embed cover image", "book_id", book.ID, "error", err.Error())
	} else if cover != "" {
		coverTag = fmt.Sprintf(`<img src="%s" alt="Cover"/>`, cover)
	}

	intro := fmt.Sprintf("%s<h1>%s</h1><p><em>%s</em></p><p>%s</p>",
		coverTag,
		html.EscapeString(book.Title),
		html.EscapeString(book.AuthorName),
		html.EscapeString(book.Synopsis),
	)
	if _, err := e.AddSection(intro, "About this book", "", ""); err != nil {
		metrics.BookExportTotal.WithLabelValues("epub", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeExportError, "failed to add intro section")
	}

	for i, ch := range book.Chapters {
		body := chapterHTML(ch)
		sectionTitle := fmt.Sprintf("Chapter %d: %s", i+1, ch.Title)
		if _, err := e.AddSection(body, sectionTitle, "", ""); err != nil {
			metrics.BookExportTotal.WithLabelValues("epub", "error").Inc()
			return nil, apperrors.Wrap(err, apperrors.CodeExportError, "failed to add chapter section")
		}
	}

	outPath := filepath.Join(tmpDir, book.ID+".epub")
	if err := e.Write(outPath); err != nil {
		metrics.BookExportTotal.WithLabelValues("epub", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeExportError, "failed to write epub file")
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		metrics.BookExportTotal.WithLabelValues("epub", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeExportError, "failed to read epub file")
	}

	metrics.BookExportTotal.WithLabelValues("epub", "success").Inc()
	logger.Info(ctx, "epub exported", "book_id", book.ID, "size_bytes", len(data))
	return data, nil
}

// embedCover 将 data URI 封面落盘到 tmpDir 并注册到 EPUB，
// 普通 URL 直接交给 go-epub 下载。
func embedCover(e *epub.Epub, coverURL, tmpDir string) (string, error) {
	if coverURL == "" {
		return "", nil
	}

	if !strings.HasPrefix(coverURL, "data:") {
		return e.AddImage(coverURL, "cover")
	}

	du, err := dataurl.DecodeString(coverURL)
	if err != nil {
		return "", fmt.Errorf("failed to decode cover data uri: %w", err)
	}

	ext := ".jpg"
	if du.MediaType.ContentType() == "image/png" {
		ext = ".png"
	}
	coverPath := filepath.Join(tmpDir, "cover"+ext)
	if err := os.WriteFile(coverPath, du.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cover image: %w", err)
	}

	return e.AddImage(coverPath, "cover"+ext)
}

// chapterHTML 将章节正文渲染为简单的段落 HTML
func chapterHTML(ch *entity.Chapter) string {
	var b strings.Builder
	b.WriteString("<h2>")
	b.WriteString(html.EscapeString(ch.Title))
	b.WriteString("</h2>")
	for _, para := range strings.Split(ch.Content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(para))
		b.WriteString("</p>")
	}
	return b.String()
}

// languageTag 将展示用语言名映射为 BCP 47 语言标签
func languageTag(language string) string {
	switch language {
	case "Italian":
		return "it"
	case "Spanish":
		return "es"
	case "French":
		return "fr"
	case "German":
		return "de"
	case "Portuguese":
		return "pt"
	case "Japanese":
		return "ja"
	case "Russian":
		return "ru"
	case "Chinese (Simplified)":
		return "zh-Hans"
	default:
		return "en"
	}
}
