// Package ledger 管理用户钱包与藏书的应用状态。
// 所有变更都在单把互斥锁内完成，随后整体写回快照存储。
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"book-weaver-api/internal/domain/entity"
	"book-weaver-api/internal/infrastructure/persistence/snapshot"
	apperrors "book-weaver-api/pkg/errors"
	"book-weaver-api/pkg/logger"
	"book-weaver-api/pkg/metrics"
)

// AppState 快照中的完整应用状态
type AppState struct {
	Users       []*entity.User      `json:"users"`
	AdminConfig *entity.AdminConfig `json:"admin_config"`
}

// Ledger 用户钱包与藏书的唯一权威。
// 变更函数要么整体成功，要么不留痕迹。
type Ledger struct {
	mu           sync.Mutex
	users        map[string]*entity.User
	order        []string // 注册顺序
	adminConfig  *entity.AdminConfig
	store        snapshot.Store
	welcomeGrant int
}

// New 创建 Ledger 并从快照存储恢复状态。
// 快照不存在时以默认管理配置启动。
func New(ctx context.Context, store snapshot.Store, welcomeGrant int) (*Ledger, error) {
	l := &Ledger{
		users:        make(map[string]*entity.User),
		adminConfig:  entity.DefaultAdminConfig(),
		store:        store,
		welcomeGrant: welcomeGrant,
	}

	data, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load state snapshot: %w", err)
	}
	if data != nil {
		var st AppState
		if err := json.Unmarshal(data, &st); err != nil {
			return nil, fmt.Errorf("failed to decode state snapshot: %w", err)
		}
		for _, u := range st.Users {
			l.users[u.ID] = u
			l.order = append(l.order, u.ID)
		}
		if st.AdminConfig != nil {
			l.adminConfig = st.AdminConfig
		}
		logger.Info(ctx, "state snapshot restored", "users", len(st.Users))
	}

	return l, nil
}

// saveLocked 将当前状态整体写回快照存储，须持锁调用
func (l *Ledger) saveLocked(ctx context.Context) error {
	st := AppState{
		Users:       make([]*entity.User, 0, len(l.order)),
		AdminConfig: l.adminConfig,
	}
	for _, id := range l.order {
		st.Users = append(st.Users, l.users[id])
	}

	data, err := json.Marshal(&st)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeStorageError, "failed to encode state snapshot")
	}
	if err := l.store.Save(ctx, data); err != nil {
		return apperrors.Wrap(err, apperrors.CodeStorageError, "failed to persist state snapshot")
	}
	return nil
}

// RegisterUser 注册新用户并发放欢迎积分
func (l *Ledger) RegisterUser(ctx context.Context, name, birthDate string) (*entity.User, error) {
	if name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "name is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user := entity.NewUser(name, birthDate, l.welcomeGrant)
	l.users[user.ID] = user
	l.order = append(l.order, user.ID)
	if err := l.saveLocked(ctx); err != nil {
		delete(l.users, user.ID)
		l.order = l.order[:len(l.order)-1]
		return nil, err
	}

	metrics.CreditsCreditedTotal.WithLabelValues("welcome").Add(float64(l.welcomeGrant))
	logger.Info(ctx, "user registered", "user_id", user.ID, "welcome_grant", l.welcomeGrant)
	snapshotUser := *user
	return &snapshotUser, nil
}

// GetUser 返回用户快照
func (l *Ledger) GetUser(userID string) (*entity.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, ok := l.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	snapshotUser := *u
	return &snapshotUser, nil
}

// ListUsers 按注册顺序返回全部用户快照
func (l *Ledger) ListUsers() []*entity.User {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*entity.User, 0, len(l.order))
	for _, id := range l.order {
		snapshotUser := *l.users[id]
		out = append(out, &snapshotUser)
	}
	return out
}

// DebitAndOpen 在一次原子变更内扣除积分并执行后续动作。
// afterDebit 在持锁状态下执行（例如登记任务），返回错误则整体回滚。
func (l *Ledger) DebitAndOpen(ctx context.Context, userID string, cost int, afterDebit func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, ok := l.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if !u.CanAfford(cost) {
		return apperrors.ErrInsufficientCredits
	}

	u.Debit(cost)
	if afterDebit != nil {
		if err := afterDebit(); err != nil {
			u.Credit(cost)
			return err
		}
	}
	if err := l.saveLocked(ctx); err != nil {
		u.Credit(cost)
		return err
	}

	metrics.CreditsDebitedTotal.Add(float64(cost))
	logger.Info(ctx, "credits debited", "user_id", userID, "amount", cost, "balance", u.Credits)
	return nil
}

// Credit 增加用户积分。reason 用于指标与审计。
func (l *Ledger) Credit(ctx context.Context, userID string, amount int, reason string) (*entity.User, error) {
	if amount <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "amount must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	u, ok := l.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}

	u.Credit(amount)
	if err := l.saveLocked(ctx); err != nil {
		u.Debit(amount)
		return nil, err
	}

	metrics.CreditsCreditedTotal.WithLabelValues(reason).Add(float64(amount))
	logger.Info(ctx, "credits granted", "user_id", userID, "amount", amount, "reason", reason)
	snapshotUser := *u
	return &snapshotUser, nil
}

// CommitBook 在一次原子变更内将成书记入用户藏书（最新在前）并执行后续动作
func (l *Ledger) CommitBook(ctx context.Context, userID string, book *entity.Book, afterCommit func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, ok := l.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}

	u.AddBook(book)
	if err := l.saveLocked(ctx); err != nil {
		u.RemoveBook(book.ID)
		return err
	}

	if afterCommit != nil {
		afterCommit()
	}
	logger.Info(ctx, "book committed to library",
		"user_id", userID,
		"book_id", book.ID,
		"title", book.Title,
	)
	return nil
}

// RemoveBook 从用户藏书中删除一本书，目标不存在时为无操作
func (l *Ledger) RemoveBook(ctx context.Context, userID, bookID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, ok := l.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}

	if !u.RemoveBook(bookID) {
		return nil
	}
	if err := l.saveLocked(ctx); err != nil {
		return err
	}
	logger.Info(ctx, "book removed from library", "user_id", userID, "book_id", bookID)
	return nil
}

// GetBook 查找用户藏书中的一本书
func (l *Ledger) GetBook(userID, bookID string) (*entity.Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, ok := l.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	b := u.FindBook(bookID)
	if b == nil {
		return nil, apperrors.ErrBookNotFound
	}
	return b, nil
}

// ListBooks 返回用户藏书（最新在前）
func (l *Ledger) ListBooks(userID string) ([]*entity.Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, ok := l.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	out := make([]*entity.Book, len(u.Books))
	copy(out, u.Books)
	return out, nil
}

// AdminConfig 返回管理配置快照
func (l *Ledger) AdminConfig() *entity.AdminConfig {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.adminConfigSnapshotLocked()
}

func (l *Ledger) adminConfigSnapshotLocked() *entity.AdminConfig {
	cfg := &entity.AdminConfig{
		CostTiers:     make([]*entity.CostTier, len(l.adminConfig.CostTiers)),
		BirthdayBonus: l.adminConfig.BirthdayBonus,
	}
	copy(cfg.CostTiers, l.adminConfig.CostTiers)
	return cfg
}

// UpdateBirthdayBonus 更新生日奖励配置
func (l *Ledger) UpdateBirthdayBonus(ctx context.Context, bonus entity.BirthdayBonusConfig) error {
	if bonus.Credits < 0 {
		return apperrors.New(apperrors.CodeInvalidParam, "credits must not be negative")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.adminConfig.BirthdayBonus
	l.adminConfig.BirthdayBonus = bonus
	if err := l.saveLocked(ctx); err != nil {
		l.adminConfig.BirthdayBonus = prev
		return err
	}
	logger.Info(ctx, "birthday bonus config updated", "enabled", bonus.Enabled, "credits", bonus.Credits)
	return nil
}

// AddTier 新增定价档位
func (l *Ledger) AddTier(ctx context.Context, maxPages, credits int) (*entity.CostTier, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tier, err := l.adminConfig.AddTier(maxPages, credits)
	if err != nil {
		return nil, err
	}
	if err := l.saveLocked(ctx); err != nil {
		l.adminConfig.RemoveTier(tier.ID)
		return nil, err
	}
	logger.Info(ctx, "cost tier added", "max_pages", maxPages, "credits", credits)
	return tier, nil
}

// RemoveTier 删除定价档位
func (l *Ledger) RemoveTier(ctx context.Context, tierID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.adminConfig.RemoveTier(tierID) {
		return apperrors.ErrTierNotFound
	}
	if err := l.saveLocked(ctx); err != nil {
		return err
	}
	logger.Info(ctx, "cost tier removed", "tier_id", tierID)
	return nil
}
