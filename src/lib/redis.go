package lib

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

// CacheSetJSON stores a value as JSON under key with a TTL. Failures are
// logged and swallowed so a cold cache never breaks a request.
func CacheSetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[redis] Failed to marshal value for key %s: %s\n", key, err.Error())
		return
	}
	if err := rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("[redis] Failed to set value for key %s: %s\n", key, err.Error())
	}
}

// CacheGetJSON loads a JSON value into out. Returns false on miss or error.
func CacheGetJSON(ctx context.Context, key string, out any) bool {
	rdb := GetRedisClient()
	if rdb == nil {
		return false
	}
	raw, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	} else if err != nil {
		log.Printf("[redis] Error retrieving value for %s: %s\n", key, err.Error())
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("[redis] Failed to unmarshal value for key %s: %s\n", key, err.Error())
		return false
	}
	return true
}

// CacheInvalidate drops keys after a write invalidates them.
func CacheInvalidate(ctx context.Context, keys ...string) {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[redis] Failed to delete keys %v: %s\n", keys, err.Error())
	}
}
