// Package cache keeps short-lived copies of per-barber booked times so the
// booking flow does not hit the database on every slot refresh.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
)

// genTTL outlives any fill that could still be in flight.
const genTTL = 24 * time.Hour

// setIfGeneration stores ARGV[2] under KEYS[1] only while the generation
// counter in KEYS[2] still equals ARGV[1].
var setIfGeneration = redis.NewScript(`
local gen = redis.call("GET", KEYS[2])
if not gen then gen = "0" end
if gen ~= ARGV[1] then return 0 end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

type BookedTimes struct {
	client *redis.Client
	ttl    time.Duration
}

var _ domain.BookedTimesCache = (*BookedTimes)(nil)

func NewBookedTimes(client *redis.Client, ttl time.Duration) *BookedTimes {
	return &BookedTimes{client: client, ttl: ttl}
}

func key(barberID uint, date string) string {
	return fmt.Sprintf("booked:%d:%s", barberID, date)
}

func genKey(barberID uint, date string) string {
	return fmt.Sprintf("booked:gen:%d:%s", barberID, date)
}

func (c *BookedTimes) Get(ctx context.Context, barberID uint, date string) (domain.CachedTimes, error) {
	vals, err := c.client.MGet(ctx, key(barberID, date), genKey(barberID, date)).Result()
	if err != nil {
		return domain.CachedTimes{}, fmt.Errorf("get booked times: %w", err)
	}

	var out domain.CachedTimes
	if s, ok := vals[1].(string); ok {
		if out.Generation, err = strconv.ParseInt(s, 10, 64); err != nil {
			return domain.CachedTimes{}, fmt.Errorf("decode generation: %w", err)
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out.Times); err != nil {
		return domain.CachedTimes{}, fmt.Errorf("decode booked times: %w", err)
	}
	out.Hit = true
	return out, nil
}

// Set stores times unless the key was invalidated after generation was read.
func (c *BookedTimes) Set(ctx context.Context, barberID uint, date string, generation int64, times []string) error {
	if c.ttl <= 0 {
		return nil
	}
	if times == nil {
		times = []string{}
	}
	raw, err := json.Marshal(times)
	if err != nil {
		return err
	}

	err = setIfGeneration.Run(ctx, c.client,
		[]string{key(barberID, date), genKey(barberID, date)},
		strconv.FormatInt(generation, 10),
		string(raw),
		c.ttl.Milliseconds(),
	).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("set booked times: %w", err)
	}
	return nil
}

func (c *BookedTimes) Invalidate(ctx context.Context, barberID uint, date string) error {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, genKey(barberID, date))
		p.Expire(ctx, genKey(barberID, date), genTTL)
		p.Del(ctx, key(barberID, date))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate booked times: %w", err)
	}
	return nil
}
