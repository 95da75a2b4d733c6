// Package snapshot 提供应用状态快照的持久化
// 语义：启动时读取一次完整快照，之后每次状态变更后整体写回。
package snapshot

import "context"

// Store 快照存储抽象
type Store interface {
	// Load 读取快照，快照不存在时返回 (nil, nil)
	Load(ctx context.Context) ([]byte, error)
	// Save 原子地写入完整快照
	Save(ctx context.Context, data []byte) error
}
