package database

import (
	"context"
	"errors"
)

// ErrNotFound key 不存在
var ErrNotFound = errors.New("record not found")

// Store 键值记录存储
// 每个 key 保存一个完整集合的 JSON 文本，写入即整体替换
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
