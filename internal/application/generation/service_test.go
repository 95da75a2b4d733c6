package generation

import (
	"context"
	"sync"
	"testing"
	"time"

	"book-weaver-api/internal/application/jobs"
	"book-weaver-api/internal/application/ledger"
	"book-weaver-api/internal/domain/entity"
	apperrors "book-weaver-api/pkg/errors"
)

// memStore 测试用的内存快照存储
type memStore struct {
	mu   sync.Mutex
	data []byte
}

func (s *memStore) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, nil
}

func (s *memStore) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

// gatedPlanner 在 gate 关闭前阻塞，让测试有机会先订阅任务
type gatedPlanner struct {
	gate    chan struct{}
	outline *Outline
	err     error
}

func (g *gatedPlanner) PlanOutline(ctx context.Context, req *entity.GenerationRequest) (*Outline, error) {
	<-g.gate
	return g.outline, g.err
}

func newTestService(t *testing.T, planner OutlinePlanner) (*Service, *ledger.Ledger, *jobs.Tracker, *entity.User) {
	t.Helper()
	l, err := ledger.New(context.Background(), &memStore{}, 500)
	if err != nil {
		t.Fatalf("ledger.New error: %v", err)
	}
	user, err := l.RegisterUser(context.Background(), "Ada", "")
	if err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}
	tracker := jobs.NewTracker()
	svc := NewService(l, tracker, NewOrchestrator(planner, &stubWriter{}, &stubDesigner{}))
	return svc, l, tracker, user
}

func creditsOf(t *testing.T, l *ledger.Ledger, userID string) int {
	t.Helper()
	u, err := l.GetUser(userID)
	if err != nil {
		t.Fatalf("GetUser error: %v", err)
	}
	return u.Credits
}

// drainToFinal 读取更新直到通道关闭，返回最后一条
func drainToFinal(t *testing.T, updates <-chan jobs.Update) jobs.Update {
	t.Helper()
	var last jobs.Update
	deadline := time.After(5 * time.Second)
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return last
			}
			last = u
		case <-deadline:
			t.Fatal("timed out waiting for terminal update")
		}
	}
}

func TestService_PriceRequest(t *testing.T) {
	svc, _, _, _ := newTestService(t, &stubPlanner{})

	cost, err := svc.PriceRequest(50)
	if err != nil {
		t.Fatalf("PriceRequest error: %v", err)
	}
	if cost != 300 {
		t.Errorf("cost = %d, want 300 (default tiers)", cost)
	}

	if _, err := svc.PriceRequest(301); !apperrors.IsCode(err, apperrors.CodeUnpriceable) {
		t.Errorf("error = %v, want unpriceable", err)
	}
}

func TestService_Start_SuccessCommitsBookAndKeepsDebit(t *testing.T) {
	planner := &gatedPlanner{gate: make(chan struct{}), outline: testOutline(2)}
	svc, l, tracker, user := newTestService(t, planner)
	req := &entity.GenerationRequest{Description: "d", Pages: 30, AuthorName: "Ada", Language: "English"}

	jobID, cost, err := svc.Start(context.Background(), user.ID, req)
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if cost != 100 {
		t.Errorf("cost = %d, want 100 for 30 pages", cost)
	}
	if creditsOf(t, l, user.ID) != 400 {
		t.Errorf("credits after debit = %d, want 400", creditsOf(t, l, user.ID))
	}

	updates, err := tracker.Subscribe(jobID)
	if err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}
	close(planner.gate)

	final := drainToFinal(t, updates)
	if final.Progress.Status != entity.JobStatusSucceeded {
		t.Fatalf("final status = %q", final.Progress.Status)
	}
	if final.Book == nil {
		t.Fatal("final update missing book")
	}

	books, err := l.ListBooks(user.ID)
	if err != nil {
		t.Fatalf("ListBooks error: %v", err)
	}
	if len(books) != 1 || books[0].ID != final.Book.ID {
		t.Errorf("library books = %v", books)
	}
	if creditsOf(t, l, user.ID) != 400 {
		t.Errorf("credits after success = %d, want debit kept", creditsOf(t, l, user.ID))
	}
	if _, err := tracker.Get(jobID); err == nil {
		t.Error("job still tracked after completion")
	}
}

func TestService_Start_InvalidRequestRejectedBeforeDebit(t *testing.T) {
	svc, l, _, user := newTestService(t, &stubPlanner{})

	req := &entity.GenerationRequest{Description: "", Pages: 30, AuthorName: "Ada", Language: "English"}
	if _, _, err := svc.Start(context.Background(), user.ID, req); err == nil {
		t.Fatal("expected validation error")
	}
	if creditsOf(t, l, user.ID) != 500 {
		t.Errorf("credits changed on rejected request: %d", creditsOf(t, l, user.ID))
	}
}

func TestService_Start_InsufficientCredits(t *testing.T) {
	svc, l, tracker, user := newTestService(t, &stubPlanner{})

	// 300 页定价 750，超出 500 欢迎积分
	req := &entity.GenerationRequest{Description: "d", Pages: 300, AuthorName: "Ada", Language: "English"}
	_, _, err := svc.Start(context.Background(), user.ID, req)
	if !apperrors.IsCode(err, apperrors.CodeInsufficientCredits) {
		t.Fatalf("error = %v, want insufficient credits", err)
	}
	if creditsOf(t, l, user.ID) != 500 {
		t.Errorf("credits = %d, want unchanged", creditsOf(t, l, user.ID))
	}
	if active := tracker.ListByUser(user.ID); len(active) != 0 {
		t.Errorf("jobs registered despite rejection: %d", len(active))
	}
}

func TestService_Start_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService(t, &stubPlanner{})
	req := &entity.GenerationRequest{Description: "d", Pages: 30, AuthorName: "Ada", Language: "English"}

	_, _, err := svc.Start(context.Background(), "missing", req)
	if !apperrors.IsCode(err, apperrors.CodeUserNotFound) {
		t.Errorf("error = %v, want user not found", err)
	}
}

func TestService_Start_FailureKeepsDebitAndClosesJob(t *testing.T) {
	planner := &gatedPlanner{
		gate: make(chan struct{}),
		err:  apperrors.New(apperrors.CodeContractViolation, "the AI failed to generate a valid book outline"),
	}
	svc, l, tracker, user := newTestService(t, planner)
	req := &entity.GenerationRequest{Description: "d", Pages: 30, AuthorName: "Ada", Language: "English"}

	jobID, _, err := svc.Start(context.Background(), user.ID, req)
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	updates, err := tracker.Subscribe(jobID)
	if err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}
	close(planner.gate)

	final := drainToFinal(t, updates)
	if final.Progress.Status != entity.JobStatusFailed {
		t.Fatalf("final status = %q, want Failed", final.Progress.Status)
	}
	if final.Err == nil {
		t.Error("final update missing error")
	}

	// 失败不退款
	if creditsOf(t, l, user.ID) != 400 {
		t.Errorf("credits = %d, want 400 (no refund)", creditsOf(t, l, user.ID))
	}
	books, _ := l.ListBooks(user.ID)
	if len(books) != 0 {
		t.Errorf("library contains %d books after failure, want 0", len(books))
	}
	if _, err := tracker.Get(jobID); err == nil {
		t.Error("job still tracked after failure")
	}
}

func TestService_Start_ConcurrentJobsForSameUser(t *testing.T) {
	planner := &gatedPlanner{gate: make(chan struct{}), outline: testOutline(1)}
	svc, l, tracker, user := newTestService(t, planner)
	req := &entity.GenerationRequest{Description: "d", Pages: 30, AuthorName: "Ada", Language: "English"}

	jobA, _, err := svc.Start(context.Background(), user.ID, req)
	if err != nil {
		t.Fatalf("first Start error: %v", err)
	}
	jobB, _, err := svc.Start(context.Background(), user.ID, req)
	if err != nil {
		t.Fatalf("second Start error: %v", err)
	}
	if jobA == jobB {
		t.Error("expected distinct job IDs")
	}
	if active := tracker.ListByUser(user.ID); len(active) != 2 {
		t.Errorf("active jobs = %d, want 2", len(active))
	}
	// 两次扣费都已发生
	if creditsOf(t, l, user.ID) != 300 {
		t.Errorf("credits = %d, want 300 after two debits", creditsOf(t, l, user.ID))
	}

	updatesA, err := tracker.Subscribe(jobA)
	if err != nil {
		t.Fatalf("Subscribe A error: %v", err)
	}
	updatesB, err := tracker.Subscribe(jobB)
	if err != nil {
		t.Fatalf("Subscribe B error: %v", err)
	}
	close(planner.gate)

	drainToFinal(t, updatesA)
	drainToFinal(t, updatesB)

	books, _ := l.ListBooks(user.ID)
	if len(books) != 2 {
		t.Errorf("library books = %d, want 2", len(books))
	}
}
