package repository

import (
	"context"
	"errors"

	"github.com/tidwall/gjson"
)

var (
	errNotArray  = errors.New("record is not a JSON array")
	errNotObject = errors.New("record is not a JSON object")
)

// collection 一个 key 保存一个 JSON 数组的集合
// 每次读取都走归一化解码，每次写入整体替换
type collection[T any] struct {
	records  *Records
	key      string
	decode   func(gjson.Result) T
	fallback func() []T
}

func newCollection[T any](records *Records, key string, decode func(gjson.Result) T) *collection[T] {
	return &collection[T]{
		records:  records,
		key:      key,
		decode:   decode,
		fallback: func() []T { return nil },
	}
}

func (c *collection[T]) list(ctx context.Context) []T {
	raw, ok := c.records.ReadRaw(ctx, c.key)
	if !ok {
		return c.fallback()
	}
	elems, ok := parseArray(raw)
	if !ok {
		c.records.Malformed(c.key, errNotArray)
		return c.fallback()
	}
	out := make([]T, 0, len(elems))
	for _, e := range elems {
		if !e.IsObject() {
			continue
		}
		out = append(out, c.decode(e))
	}
	return out
}

func (c *collection[T]) save(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.records.Write(ctx, c.key, items)
}

// find 返回第一个满足条件的元素下标，-1 表示不存在
func find[T any](items []T, match func(*T) bool) int {
	for i := range items {
		if match(&items[i]) {
			return i
		}
	}
	return -1
}
