package cache

import (
	"context"
	"time"
)

// Store là backend lưu trữ cho TagCache (Redis hoặc in-memory).
// Mỗi entry có thể mang nhiều tag; mỗi tag có một generation counter.
type Store interface {
	// Get lấy raw payload theo key
	// Returns: (payload, found, error)
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// TagVersions trả về generation hiện tại của từng tag (cùng thứ tự với tags).
	// Tag chưa từng bị invalidate có version 0.
	TagVersions(ctx context.Context, tags []string) ([]int64, error)

	// SetTagged lưu value và index key dưới từng tag, nhưng chỉ khi generation
	// của mọi tag vẫn bằng versions. Check-and-set phải atomic.
	// Returns stored=false khi có tag đã bị invalidate kể từ lúc đọc versions.
	SetTagged(ctx context.Context, key string, value []byte, tags []string, versions []int64, ttl time.Duration) (bool, error)

	// InvalidateTags tăng generation và xóa mọi key đang được index dưới các tags
	InvalidateTags(ctx context.Context, tags ...string) error

	// Ping kiểm tra connection
	Ping(ctx context.Context) error
}
