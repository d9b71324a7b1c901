package mdsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	basesvc "pos_commerce/internal/api/base/service"
	mdmodels "pos_commerce/internal/api/masterdata/models"
	"pos_commerce/internal/common"
)

// itemBookIDLayout là phần ngày của item_book_id: YYYYMMDD-NNNN
const itemBookIDLayout = "20060102"

// maxProbeSequence giới hạn số lần thử khi dò sequence trên MongoDB
const maxProbeSequence = 9999

// ItemBookIDGenerator cấp item_book_id mới cho tenant
type ItemBookIDGenerator interface {
	Next(ctx context.Context, q basesvc.TenantQuery, now time.Time) (string, error)
}

func formatItemBookID(now time.Time, seq int64) string {
	return fmt.Sprintf("%s-%04d", now.Format(itemBookIDLayout), seq)
}

// ProbeIDGenerator dò sequence nhỏ nhất chưa dùng trong ngày
type ProbeIDGenerator struct {
	books basesvc.TenantStore[mdmodels.ItemBook]
}

// NewProbeIDGenerator tạo generator dò trên collection item_books
func NewProbeIDGenerator(books basesvc.TenantStore[mdmodels.ItemBook]) *ProbeIDGenerator {
	return &ProbeIDGenerator{books: books}
}

// Next trả về id đầu tiên chưa tồn tại
func (g *ProbeIDGenerator) Next(ctx context.Context, q basesvc.TenantQuery, now time.Time) (string, error) {
	for seq := int64(1); seq <= maxProbeSequence; seq++ {
		id := formatItemBookID(now, seq)
		exists, err := g.books.Exists(ctx, q, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", common.NewError(common.ErrCodeBusinessOperation, "đã hết sequence item_book_id trong ngày", common.StatusConflict, nil)
}

// redisCounter là phần của redis.Cmdable mà RedisIDGenerator cần
type redisCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisIDGenerator lấy sequence từ INCR theo tenant và ngày
type RedisIDGenerator struct {
	client redisCounter
	ttl    time.Duration
}

// NewRedisIDGenerator tạo generator dùng Redis; key hết hạn sau ttl
func NewRedisIDGenerator(client redisCounter, ttl time.Duration) *RedisIDGenerator {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &RedisIDGenerator{client: client, ttl: ttl}
}

func itemBookSeqKey(tenantID string, now time.Time) string {
	return fmt.Sprintf("item_book_seq:%s:%s", tenantID, now.Format(itemBookIDLayout))
}

// Next tăng counter của ngày hiện tại và trả về id tương ứng
func (g *RedisIDGenerator) Next(ctx context.Context, q basesvc.TenantQuery, now time.Time) (string, error) {
	key := itemBookSeqKey(q.TenantID(), now)
	seq, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return "", common.RepositoryError("không tăng được sequence item_book_id", err)
	}
	if seq == 1 {
		if err := g.client.Expire(ctx, key, g.ttl).Err(); err != nil {
			return "", common.RepositoryError("không đặt được TTL cho sequence item_book_id", err)
		}
	}
	return formatItemBookID(now, seq), nil
}
