package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

const (
	keyPrefix        = "availability:"
	versionKeyPrefix = "availability:version:"

	// versionTTL должен быть заметно больше времени одного расчёта доступности
	versionTTL = 24 * time.Hour
)

// ErrCache возвращается при ошибках redis или (де)сериализации
var ErrCache = errors.New("availability.cache: error")

// Cache кэш рассчитанной доступности в Redis, ключ - календарная дата
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш поверх готового клиента
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает доступность на дату. ok=false, если записи нет.
func (c *Cache) Get(ctx context.Context, date time.Time) ([]domain.TableAvailability, bool, error) {
	data, err := c.client.Get(ctx, key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	availability, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return availability, true, nil
}

// Version возвращает поколение записи на дату. Каждый Invalidate увеличивает его.
func (c *Cache) Version(ctx context.Context, date time.Time) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: get version: %v", ErrCache, err)
	}
	return version, nil
}

// SetIfVersion сохраняет доступность на дату с TTL, только если поколение всё ещё равно version.
// stored=false означает, что за время расчёта дата была сброшена и результат устарел.
func (c *Cache) SetIfVersion(ctx context.Context, date time.Time, version int64, availability []domain.TableAvailability) (bool, error) {
	data, err := encode(availability)
	if err != nil {
		return false, err
	}

	vKey := versionKey(date)
	stale := false

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			stale = true
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(date), data, c.ttl)
			return nil
		})
		return err
	}, vKey)

	if errors.Is(err, redis.TxFailedErr) {
		// Invalidate успел между чтением поколения и EXEC
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: set: %v", ErrCache, err)
	}

	return !stale, nil
}

// Invalidate удаляет запись на дату и увеличивает её поколение.
// Вызывается при любом изменении бронирований этого дня.
func (c *Cache) Invalidate(ctx context.Context, date time.Time) error {
	vKey := versionKey(date)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, vKey)
		pipe.Expire(ctx, vKey, versionTTL)
		pipe.Del(ctx, key(date))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: invalidate: %v", ErrCache, err)
	}
	return nil
}

func key(date time.Time) string {
	return keyPrefix + date.Format(domain.DateFormat)
}

func versionKey(date time.Time) string {
	return versionKeyPrefix + date.Format(domain.DateFormat)
}

func encode(availability []domain.TableAvailability) ([]byte, error) {
	data, err := json.Marshal(availability)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrCache, err)
	}
	return data, nil
}

func decode(data []byte) ([]domain.TableAvailability, error) {
	var availability []domain.TableAvailability
	if err := json.Unmarshal(data, &availability); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCache, err)
	}
	return availability, nil
}
