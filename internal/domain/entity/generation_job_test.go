package entity

import "testing"

func TestNewGenerationJob(t *testing.T) {
	job := NewGenerationJob("user-1", "Untitled Space Opera", "Ada")

	if job.ID == "" {
		t.Error("expected generated job ID")
	}
	if job.UserID != "user-1" || job.TempTitle != "Untitled Space Opera" || job.AuthorName != "Ada" {
		t.Errorf("unexpected job fields: %+v", job)
	}
	if job.Progress.Status != JobStatusInitializing {
		t.Errorf("initial status = %q, want %q", job.Progress.Status, JobStatusInitializing)
	}
	if job.Progress.Message != "Contacting AI agents..." {
		t.Errorf("initial message = %q", job.Progress.Message)
	}
	if job.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	other := NewGenerationJob("user-1", "Another", "Ada")
	if other.ID == job.ID {
		t.Error("expected distinct job IDs")
	}
}

func TestJobStatusIsTerminal(t *testing.T) {
	terminal := []JobStatus{JobStatusSucceeded, JobStatusFailed}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%q should be terminal", s)
		}
	}

	active := []JobStatus{
		JobStatusInitializing,
		JobStatusOutlining,
		JobStatusOutlineComplete,
		JobStatusWritingChapters,
		JobStatusDesigningCover,
		JobStatusFinalizing,
	}
	for _, s := range active {
		if s.IsTerminal() {
			t.Errorf("%q should not be terminal", s)
		}
	}
}

func TestGenerationJobUpdateProgress(t *testing.T) {
	job := NewGenerationJob("user-1", "Untitled", "Ada")
	job.UpdateProgress(GenerationProgress{
		Status:  JobStatusWritingChapters,
		Current: 3,
		Total:   10,
		Message: `Penning Chapter 3: "The Descent"`,
	})

	if job.Progress.Status != JobStatusWritingChapters {
		t.Errorf("status = %q", job.Progress.Status)
	}
	if job.Progress.Current != 3 || job.Progress.Total != 10 {
		t.Errorf("chapter counters = %d/%d", job.Progress.Current, job.Progress.Total)
	}
}
