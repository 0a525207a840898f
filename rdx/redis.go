package rdx

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Conn is nil when Redis is unavailable; event publication degrades to a
// no-op rather than failing requests.
var Conn *redis.Client

// Connect dials Redis using REDIS_ADDR (default localhost:6379).
func Connect() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s; events disabled: %v", addr, err)
		return
	}
	Conn = client
}
