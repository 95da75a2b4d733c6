package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"book-weaver-api/pkg/logger"
	"book-weaver-api/pkg/metrics"
)

// SweepBirthdays 遍历全部用户，为生日月/日与 today 相同的用户发放奖励，
// 返回逐用户的审计行（含渲染后的模拟邮件文案）。
// 注意：本操作不去重，同一天重复调用会重复发放。
func (l *Ledger) SweepBirthdays(ctx context.Context, today time.Time) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bonus := l.adminConfig.BirthdayBonus
	if !bonus.Enabled {
		return []string{"Birthday bonus is disabled. No action taken."}, nil
	}

	var lines []string
	var awarded []string
	for _, id := range l.order {
		u := l.users[id]
		if !u.HasBirthdayOn(today) {
			continue
		}
		u.Credit(bonus.Credits)
		awarded = append(awarded, id)

		email := renderBirthdayEmail(bonus.EmailTemplate, u.Name, bonus.Credits)
		lines = append(lines,
			fmt.Sprintf("✅ Awarded %d credits to %s for their birthday.", bonus.Credits, u.Name),
			fmt.Sprintf("✉️ Simulated sending email: %q", email),
		)
	}

	if len(awarded) == 0 {
		return []string{"No user birthdays today."}, nil
	}

	if err := l.saveLocked(ctx); err != nil {
		for _, id := range awarded {
			l.users[id].Debit(bonus.Credits)
		}
		return nil, err
	}

	metrics.CreditsCreditedTotal.WithLabelValues("birthday").
		Add(float64(bonus.Credits * len(awarded)))
	logger.Info(ctx, "birthday sweep completed", "awarded_users", len(awarded))
	return lines, nil
}

// renderBirthdayEmail 替换模板中的 {{userName}} 与 {{credits}} 占位符
func renderBirthdayEmail(template, userName string, credits int) string {
	out := strings.ReplaceAll(template, "{{userName}}", userName)
	out = strings.ReplaceAll(out, "{{credits}}", strconv.Itoa(credits))
	return out
}
