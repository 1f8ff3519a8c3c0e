package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisKeyPrefix = "cache:"

var allTypes = []Type{TypeProducts, TypeCategories, TypeProduct, TypeCategory, TypeOther}

// RedisStore is a Store backed by a shared Redis instance, so invalidation is
// visible across replicas. Type membership is tracked in a per-type set;
// entry expiry rides on Redis TTLs.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		zap.L().Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return val, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, typ Type, ttl time.Duration) {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+key, value, ttl)
	pipe.SAdd(ctx, s.typeSetKey(typ), key)
	if _, err := pipe.Exec(ctx); err != nil {
		zap.L().Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *RedisStore) InvalidateType(ctx context.Context, typ Type, identifiers ...string) {
	members, err := s.client.SMembers(ctx, s.typeSetKey(typ)).Result()
	if err != nil {
		zap.L().Error("Cache type invalidation failed", zap.String("type", string(typ)), zap.Error(err))
		return
	}

	keys := make([]string, 0, len(members)+len(identifiers)+1)
	for _, m := range members {
		keys = append(keys, redisKeyPrefix+m)
	}
	keys = append(keys, s.typeSetKey(typ))

	for _, id := range identifiers {
		single := identifierKey(typ, id)
		keys = append(keys, redisKeyPrefix+single)
		if err := s.client.SRem(ctx, s.typeSetKey(singularOf(typ)), single).Err(); err != nil {
			zap.L().Warn("Cache set membership cleanup failed", zap.String("key", single), zap.Error(err))
		}
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		zap.L().Error("Cache type invalidation failed", zap.String("type", string(typ)), zap.Error(err))
	}
}

func (s *RedisStore) InvalidateAll(ctx context.Context) {
	for _, typ := range allTypes {
		s.InvalidateType(ctx, typ)
	}
}

func (s *RedisStore) Stats(ctx context.Context) Stats {
	stats := Stats{ByType: make(map[Type]int)}

	for _, typ := range allTypes {
		members, err := s.client.SMembers(ctx, s.typeSetKey(typ)).Result()
		if err != nil {
			zap.L().Warn("Cache stats read failed", zap.String("type", string(typ)), zap.Error(err))
			continue
		}
		for _, m := range members {
			size, err := s.client.StrLen(ctx, redisKeyPrefix+m).Result()
			if err != nil || size == 0 {
				// Entry expired out from under its set; drop the membership.
				s.client.SRem(ctx, s.typeSetKey(typ), m)
				continue
			}
			stats.Entries++
			stats.ByType[typ]++
			stats.ApproxBytes += size + int64(len(m))
		}
	}
	return stats
}

func (s *RedisStore) typeSetKey(typ Type) string {
	return redisKeyPrefix + "type:" + string(typ)
}
