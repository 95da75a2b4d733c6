package publish

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/vincent-petithory/dataurl"

	"book-weaver-api/internal/domain/entity"
	apperrors "book-weaver-api/pkg/errors"
	"book-weaver-api/pkg/logger"
	"book-weaver-api/pkg/metrics"
)

// ZipExporter 将书籍打包为 ZIP：逐章 markdown 文件加封面图
type ZipExporter struct{}

func NewZipExporter() *ZipExporter {
	return &ZipExporter{}
}

// Export 将一本书打包为 ZIP 并返回文件内容
func (x *ZipExporter) Export(ctx context.Context, book *entity.Book) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	about := fmt.Sprintf("# %s\n\nby %s\n\n%s\n", book.Title, book.AuthorName, book.Synopsis)
	if err := writeZipFile(w, "00_about.md", []byte(about)); err != nil {
		metrics.BookExportTotal.WithLabelValues("zip", "error").Inc()
		return nil, err
	}

	for i, ch := range book.Chapters {
		slug := SanitizeFilename(ch.Title)
		if slug == "" {
			slug = "chapter"
		}
		name := fmt.Sprintf("%02d_%s.md", i+1, slug)
		content := fmt.Sprintf("# %s\n\n%s\n", ch.Title, ch.Content)
		if err := writeZipFile(w, name, []byte(content)); err != nil {
			metrics.BookExportTotal.WithLabelValues("zip", "error").Inc()
			return nil, err
		}
	}

	if strings.HasPrefix(book.CoverImageURL, "data:") {
		du, err := dataurl.DecodeString(book.CoverImageURL)
		if err != nil {
			logger.Warn(ctx, "failed to decode cover for zip export", "book_id", book.ID, "error", err.Error())
		} else {
			ext := "jpg"
			if du.MediaType.ContentType() == "image/png" {
				ext = "png"
			}
			if err := writeZipFile(w, "cover."+ext, du.Data); err != nil {
				metrics.BookExportTotal.WithLabelValues("zip", "error").Inc()
				return nil, err
			}
		}
	}

	if err := w.Close(); err != nil {
		metrics.BookExportTotal.WithLabelValues("zip", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeExportError, "failed to finalize zip archive")
	}

	metrics.BookExportTotal.WithLabelValues("zip", "success").Inc()
	logger.Info(ctx, "zip exported", "book_id", book.ID, "size_bytes", buf.Len())
	return buf.Bytes(), nil
}

func writeZipFile(w *zip.Writer, name string, data []byte) error {
	f, err := w.Create(name)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeExportError, "failed to create zip entry "+name)
	}
	if _, err := f.Write(data); err != nil {
		return apperrors.Wrap(err, apperrors.CodeExportError, "failed to write zip entry "+name)
	}
	return nil
}

// SanitizeFilename 将标题转为安全的文件名片段
func SanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "", "\"", "", "<", "", ">", "", "|", "-", " ", "_",
	)
	out := replacer.Replace(s)
	if len(out) > 60 {
		out = out[:60]
	}
	return out
}
