package generation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"book-weaver-api/internal/domain/entity"
	apperrors "book-weaver-api/pkg/errors"
)

type stubPlanner struct {
	outline *Outline
	err     error
}

func (s *stubPlanner) PlanOutline(ctx context.Context, req *entity.GenerationRequest) (*Outline, error) {
	return s.outline, s.err
}

type stubWriter struct {
	err   error
	calls int
}

func (s *stubWriter) WriteChapter(ctx context.Context, in ChapterInput) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("Prose for %s (%d words)", in.ChapterTitle, in.Words), nil
}

type stubDesigner struct {
	err error
}

func (s *stubDesigner) DesignCover(ctx context.Context, title, synopsis, keywords string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "data:image/jpeg;base64,AAAA", nil
}

func testOutline(chapterCount int) *Outline {
	o := &Outline{Title: "The Lighthouse Keeper", Synopsis: "A keeper uncovers a secret."}
	for i := 0; i < chapterCount; i++ {
		o.Chapters = append(o.Chapters, OutlineChapter{
			Title:   fmt.Sprintf("Chapter Title %d", i+1),
			Summary: fmt.Sprintf("Summary %d", i+1),
		})
	}
	return o
}

func collectEvents(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	for e := range events {
		out = append(out, e)
	}
	return out
}

func TestOrchestrator_Run_FullEventSequence(t *testing.T) {
	o := NewOrchestrator(&stubPlanner{outline: testOutline(3)}, &stubWriter{}, &stubDesigner{})
	req := &entity.GenerationRequest{
		Description: "d", Pages: 60, AuthorName: "Ada", Language: "English",
	}

	got := collectEvents(t, o.Run(context.Background(), req))

	wantStatuses := []entity.JobStatus{
		entity.JobStatusInitializing,
		entity.JobStatusOutlining,
		entity.JobStatusOutlineComplete,
		entity.JobStatusWritingChapters,
		entity.JobStatusWritingChapters,
		entity.JobStatusWritingChapters,
		entity.JobStatusDesigningCover,
		entity.JobStatusFinalizing,
		entity.JobStatusSucceeded,
	}
	if len(got) != len(wantStatuses) {
		t.Fatalf("got %d events, want %d", len(got), len(wantStatuses))
	}
	for i, want := range wantStatuses {
		if got[i].Progress.Status != want {
			t.Errorf("event[%d].Status = %q, want %q", i, got[i].Progress.Status, want)
		}
	}

	// 章节事件携带序号与标题
	third := got[5]
	if third.Progress.Current != 3 || third.Progress.Total != 3 {
		t.Errorf("chapter event progress = %d/%d, want 3/3", third.Progress.Current, third.Progress.Total)
	}
	if third.Progress.Message != `Penning Chapter 3: "Chapter Title 3"` {
		t.Errorf("chapter message = %q", third.Progress.Message)
	}

	final := got[len(got)-1]
	if !final.Terminal() {
		t.Error("last event is not terminal")
	}
	if final.Book == nil {
		t.Fatal("terminal event missing book")
	}
	if final.Book.Title != "The Lighthouse Keeper" {
		t.Errorf("book title = %q", final.Book.Title)
	}
	if len(final.Book.Chapters) != 3 {
		t.Errorf("len(Chapters) = %d, want 3", len(final.Book.Chapters))
	}
	if final.Book.CoverImageURL == "" {
		t.Error("book missing cover image")
	}
	if !strings.Contains(final.Progress.Message, "ready in your library") {
		t.Errorf("success message = %q", final.Progress.Message)
	}
}

func TestOrchestrator_Run_OutlineFailureStopsPipeline(t *testing.T) {
	writer := &stubWriter{}
	o := NewOrchestrator(
		&stubPlanner{err: apperrors.New(apperrors.CodeContractViolation, "the AI failed to generate a valid book outline")},
		writer,
		&stubDesigner{},
	)
	req := &entity.GenerationRequest{Description: "d", Pages: 60, AuthorName: "Ada", Language: "English"}

	got := collectEvents(t, o.Run(context.Background(), req))

	final := got[len(got)-1]
	if final.Progress.Status != entity.JobStatusFailed {
		t.Fatalf("final status = %q, want %q", final.Progress.Status, entity.JobStatusFailed)
	}
	if final.Err == nil {
		t.Error("terminal event missing error")
	}
	if !strings.HasPrefix(final.Progress.Message, "An error occurred: ") {
		t.Errorf("failure message = %q", final.Progress.Message)
	}
	if writer.calls != 0 {
		t.Errorf("writer called %d times after outline failure, want 0", writer.calls)
	}
	for _, e := range got {
		if e.Progress.Status == entity.JobStatusWritingChapters {
			t.Error("chapter event emitted after outline failure")
		}
	}
}

func TestOrchestrator_Run_ChapterFailure(t *testing.T) {
	o := NewOrchestrator(
		&stubPlanner{outline: testOutline(2)},
		&stubWriter{err: apperrors.New(apperrors.CodeLLMProviderError, "model unavailable")},
		&stubDesigner{},
	)
	req := &entity.GenerationRequest{Description: "d", Pages: 60, AuthorName: "Ada", Language: "English"}

	got := collectEvents(t, o.Run(context.Background(), req))

	final := got[len(got)-1]
	if final.Progress.Status != entity.JobStatusFailed {
		t.Fatalf("final status = %q, want Failed", final.Progress.Status)
	}
	if final.Book != nil {
		t.Error("failed run must not carry a partial book")
	}
	for _, e := range got {
		if e.Progress.Status == entity.JobStatusDesigningCover {
			t.Error("cover stage reached after chapter failure")
		}
	}
}

func TestOrchestrator_Run_ChannelClosesAfterTerminal(t *testing.T) {
	o := NewOrchestrator(&stubPlanner{outline: testOutline(1)}, &stubWriter{}, &stubDesigner{})
	req := &entity.GenerationRequest{Description: "d", Pages: 30, AuthorName: "Ada", Language: "English"}

	events := o.Run(context.Background(), req)
	for range events {
	}

	// 通道关闭后再次接收立即返回零值
	if _, ok := <-events; ok {
		t.Error("events channel still open after terminal event")
	}
}
