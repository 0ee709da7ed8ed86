package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"discount-service/discount/domain"

	"github.com/redis/go-redis/v9"
)

const (
	BucketMinute = "minute"
	BucketNone   = "none"
)

type RedisStatsStore struct {
	rdb redis.Cmdable

	prefix string
	// ttl aplica apenas em chaves de série temporal / por moeda.
	// total é cumulativo e não expira.
	ttl time.Duration

	bucket string // BucketMinute (padrão) ou BucketNone

	trackCurrency bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		if p := strings.Trim(prefix, ":"); p != "" {
			s.prefix = p
		}
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackCurrency(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackCurrency = track }
}

func NewRedisStatsStore(rdb redis.Cmdable, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "discount:stats",
		ttl:    24 * time.Hour,
		bucket: BucketMinute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) TotalKey() string { return s.prefix + ":total" }

func (s *RedisStatsStore) MinuteKey(at time.Time) string {
	return fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
}

func (s *RedisStatsStore) CurrencyKey(currency string) string {
	return s.prefix + ":currency:" + strings.ToUpper(currency)
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.QuoteEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	pipe := s.rdb.Pipeline()
	incr := func(key string) {
		pipe.HIncrBy(ctx, key, "count", 1)
		pipe.HIncrByFloat(ctx, key, "price_sum", ev.Price)
		pipe.HIncrByFloat(ctx, key, "discount_sum", ev.Discount)
	}

	incr(s.TotalKey())

	if s.bucket == BucketMinute {
		key := s.MinuteKey(at)
		incr(key)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
	}

	if s.trackCurrency {
		if c := strings.TrimSpace(ev.Currency); c != "" {
			key := s.CurrencyKey(c)
			incr(key)
			if s.ttl > 0 {
				pipe.Expire(ctx, key, s.ttl)
			}
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
