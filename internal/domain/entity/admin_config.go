// Package entity 定义领域实体
package entity

import (
	"sort"

	"github.com/google/uuid"

	apperrors "book-weaver-api/pkg/errors"
)

// CostTier 按页数区间定价的积分档位
type CostTier struct {
	ID       string `json:"id"`
	MaxPages int    `json:"max_pages"` // 该档位覆盖的最大页数
	Credits  int    `json:"credits"`
}

// BirthdayBonusConfig 生日奖励配置
type BirthdayBonusConfig struct {
	Enabled bool `json:"enabled"`
	Credits int  `json:"credits"`
	// EmailTemplate 包含 {{userName}} 和 {{credits}} 两个占位符
	EmailTemplate string `json:"email_template"`
}

// AdminConfig 进程级管理配置
type AdminConfig struct {
	CostTiers     []*CostTier         `json:"cost_tiers"`
	BirthdayBonus BirthdayBonusConfig `json:"birthday_bonus"`
}

// DefaultAdminConfig 返回初始管理配置
func DefaultAdminConfig() *AdminConfig {
	return &AdminConfig{
		CostTiers: []*CostTier{
			{ID: uuid.New().String(), MaxPages: 30, Credits: 100},
			{ID: uuid.New().String(), MaxPages: 100, Credits: 300},
			{ID: uuid.New().String(), MaxPages: 200, Credits: 500},
			{ID: uuid.New().String(), MaxPages: 300, Credits: 750},
		},
		BirthdayBonus: BirthdayBonusConfig{
			Enabled: true,
			Credits: 250,
			EmailTemplate: "Happy Birthday, {{userName}}! To celebrate, " +
				"we've gifted you {{credits}} credits. Enjoy!",
		},
	}
}

// AddTier 新增定价档位，页数重复时拒绝，列表保持按页数升序
func (c *AdminConfig) AddTier(maxPages, credits int) (*CostTier, error) {
	if maxPages <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "max_pages must be positive")
	}
	if credits <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "credits must be positive")
	}
	for _, t := range c.CostTiers {
		if t.MaxPages == maxPages {
			return nil, apperrors.New(apperrors.CodeDuplicateTier, "a tier for this page count already exists")
		}
	}
	tier := &CostTier{ID: uuid.New().String(), MaxPages: maxPages, Credits: credits}
	c.CostTiers = append(c.CostTiers, tier)
	sort.Slice(c.CostTiers, func(i, j int) bool {
		return c.CostTiers[i].MaxPages < c.CostTiers[j].MaxPages
	})
	return tier, nil
}

// RemoveTier 按 ID 删除档位，返回是否删除成功
func (c *AdminConfig) RemoveTier(tierID string) bool {
	for i, t := range c.CostTiers {
		if t.ID == tierID {
			c.CostTiers = append(c.CostTiers[:i], c.CostTiers[i+1:]...)
			return true
		}
	}
	return false
}
