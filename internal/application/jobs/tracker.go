// Package jobs 维护进行中的生成任务及其进度订阅
package jobs

import (
	"context"
	"sync"

	"book-weaver-api/internal/domain/entity"
	apperrors "book-weaver-api/pkg/errors"
	"book-weaver-api/pkg/logger"
	"book-weaver-api/pkg/metrics"
)

// Update 推送给订阅者的单条进度更新。
// 终态更新携带成书或错误，之后订阅通道即关闭。
type Update struct {
	Progress entity.GenerationProgress
	Book     *entity.Book
	Err      error
}

type subscriber struct {
	ch chan Update
}

type jobState struct {
	job  *entity.GenerationJob
	subs []*subscriber
	// backlog 记录已发生的全部更新，新订阅者先补齐历史再接实时流
	backlog []Update
	closed  bool
}

// Tracker 以 (userID, jobID) 维度跟踪进行中的任务。
// 同一用户允许多个并发任务。任务结束即移除，不保留历史。
type Tracker struct {
	mu   sync.Mutex
	jobs map[string]*jobState // jobID -> state
}

// NewTracker 创建任务跟踪器
func NewTracker() *Tracker {
	return &Tracker{jobs: make(map[string]*jobState)}
}

// Open 登记新任务
func (t *Tracker) Open(ctx context.Context, job *entity.GenerationJob) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.jobs[job.ID] = &jobState{job: job}
	metrics.ActiveGenerationJobs.Inc()
	logger.Info(ctx, "generation job opened",
		"job_id", job.ID,
		"user_id", job.UserID,
	)
}

// Update 更新任务进度并广播给订阅者。任务不存在时不做任何事，
// 不会复活已结束的任务。
func (t *Tracker) Update(ctx context.Context, jobID string, progress entity.GenerationProgress) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.jobs[jobID]
	if !ok || st.closed {
		return
	}
	st.job.UpdateProgress(progress)
	t.broadcastLocked(st, Update{Progress: progress})
}

// Close 关闭任务并向订阅者推送终态更新。任务不存在时为无操作。
func (t *Tracker) Close(ctx context.Context, jobID string, final Update) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.jobs[jobID]
	if !ok {
		return
	}
	st.job.UpdateProgress(final.Progress)
	t.broadcastLocked(st, final)
	st.closed = true
	for _, sub := range st.subs {
		close(sub.ch)
	}
	st.subs = nil
	delete(t.jobs, jobID)
	metrics.ActiveGenerationJobs.Dec()
	logger.Info(ctx, "generation job closed",
		"job_id", jobID,
		"status", string(final.Progress.Status),
	)
}

// Get 查询单个任务，返回进度快照
func (t *Tracker) Get(jobID string) (*entity.GenerationJob, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.jobs[jobID]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	snapshot := *st.job
	return &snapshot, nil
}

// ListByUser 返回某用户所有进行中任务的快照
func (t *Tracker) ListByUser(userID string) []*entity.GenerationJob {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*entity.GenerationJob, 0)
	for _, st := range t.jobs {
		if st.job.UserID == userID {
			snapshot := *st.job
			out = append(out, &snapshot)
		}
	}
	return out
}

// Subscribe 订阅任务的进度流。先补齐历史更新，随后按序接收实时更新，
// 终态更新之后通道关闭。任务不存在时返回错误。
func (t *Tracker) Subscribe(jobID string) (<-chan Update, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.jobs[jobID]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}

	sub := &subscriber{ch: make(chan Update, 64+len(st.backlog))}
	for _, u := range st.backlog {
		sub.ch <- u
	}
	st.subs = append(st.subs, sub)
	return sub.ch, nil
}

// broadcastLocked 追加到 backlog 并推送给现有订阅者，须持锁调用
func (t *Tracker) broadcastLocked(st *jobState, u Update) {
	st.backlog = append(st.backlog, u)
	for _, sub := range st.subs {
		select {
		case sub.ch <- u:
		default:
			// 订阅者消费过慢时丢弃该条更新，SSE 端会用快照兜底
		}
	}
}
