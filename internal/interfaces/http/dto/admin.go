package dto

import (
	"book-weaver-api/internal/domain/entity"
)

// CostTierResponse 定价档位响应
type CostTierResponse struct {
	ID       string `json:"id"`
	MaxPages int    `json:"max_pages"`
	Credits  int    `json:"credits"`
}

// BirthdayBonusResponse 生日奖励配置响应
type BirthdayBonusResponse struct {
	Enabled       bool   `json:"enabled"`
	Credits       int    `json:"credits"`
	EmailTemplate string `json:"email_template"`
}

// AdminConfigResponse 管理配置响应
type AdminConfigResponse struct {
	CostTiers     []CostTierResponse    `json:"cost_tiers"`
	BirthdayBonus BirthdayBonusResponse `json:"birthday_bonus"`
}

// SweepResponse 生日扫描响应
type SweepResponse struct {
	Results []string `json:"results"`
}

// ToCostTierResponse 转换档位实体
func ToCostTierResponse(t *entity.CostTier) CostTierResponse {
	return CostTierResponse{ID: t.ID, MaxPages: t.MaxPages, Credits: t.Credits}
}

// ToAdminConfigResponse 转换管理配置实体
func ToAdminConfigResponse(cfg *entity.AdminConfig) AdminConfigResponse {
	tiers := make([]CostTierResponse, 0, len(cfg.CostTiers))
	for _, t := range cfg.CostTiers {
		tiers = append(tiers, ToCostTierResponse(t))
	}
	return AdminConfigResponse{
		CostTiers: tiers,
		BirthdayBonus: BirthdayBonusResponse{
			Enabled:       cfg.BirthdayBonus.Enabled,
			Credits:       cfg.BirthdayBonus.Credits,
			EmailTemplate: cfg.BirthdayBonus.EmailTemplate,
		},
	}
}
