package rdx

import (
	"log"
	"time"

	"labstock/config"
	"labstock/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		log.Printf("Invalid REDIS_URL, falling back to localhost: %v", err)
		opts = &redis.Options{Addr: "localhost:6379"}
	}
	Conn = redis.NewClient(opts)
}

// Redis is a best-effort cache in front of Mongo: every helper logs and
// returns the error, callers treat failures as a cache miss.

func SetWithExpiry(key, value string, ttl time.Duration) error {
	err := Conn.Set(globals.Ctx, key, value, ttl).Err()
	if err != nil {
		log.Printf("redis SET %s: %v", key, err)
	}
	return err
}

func RdxGet(key string) (string, error) {
	val, err := Conn.Get(globals.Ctx, key).Result()
	if err != nil && err != redis.Nil {
		log.Printf("redis GET %s: %v", key, err)
	}
	return val, err
}

func RdxDel(key string) error {
	err := Conn.Del(globals.Ctx, key).Err()
	if err != nil {
		log.Printf("redis DEL %s: %v", key, err)
	}
	return err
}
