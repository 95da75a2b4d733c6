// Package pricing 实现按页数解析生成费用
package pricing

import (
	"sort"

	"book-weaver-api/internal/domain/entity"
)

// Resolve 在档位列表中查找能覆盖给定页数的最小档位并返回其积分价格。
// 没有任何档位的 max_pages >= pages 时返回 ok=false，表示该页数不可定价。
func Resolve(pages int, tiers []*entity.CostTier) (int, bool) {
	sorted := make([]*entity.CostTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MaxPages < sorted[j].MaxPages
	})

	for _, t := range sorted {
		if pages <= t.MaxPages {
			return t.Credits, true
		}
	}
	return 0, false
}
