package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewClient создает клиента Redis и проверяет соединение
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrCache, addr, err)
	}

	return client, nil
}
