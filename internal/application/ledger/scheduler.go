package ledger

import (
	"context"
	"fmt"
	"time"

	"book-weaver-api/pkg/logger"
)

// BirthdaySweeper 每日定时触发一次生日奖励扫描
type BirthdaySweeper struct {
	ledger  *Ledger
	sweepAt string // HH:MM
}

// NewBirthdaySweeper 创建生日扫描调度器
func NewBirthdaySweeper(ledger *Ledger, sweepAt string) *BirthdaySweeper {
	return &BirthdaySweeper{ledger: ledger, sweepAt: sweepAt}
}

// Run 阻塞运行，直到 ctx 取消。每天在配置时刻执行一次扫描。
func (s *BirthdaySweeper) Run(ctx context.Context) error {
	for {
		next, err := nextSweepTime(time.Now(), s.sweepAt)
		if err != nil {
			return fmt.Errorf("invalid sweep time %q: %w", s.sweepAt, err)
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		lines, err := s.ledger.SweepBirthdays(ctx, time.Now())
		if err != nil {
			logger.Error(ctx, "scheduled birthday sweep failed", err)
			continue
		}
		for _, line := range lines {
			logger.Info(ctx, "birthday sweep", "result", line)
		}
	}
}

// nextSweepTime 计算 now 之后最近的一个 HH:MM 时刻
func nextSweepTime(now time.Time, sweepAt string) (time.Time, error) {
	t, err := time.Parse("15:04", sweepAt)
	if err != nil {
		return time.Time{}, err
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}
