package redisx

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"strconv"
)

var ErrInFlight = errors.New("request with this idempotency key is still in progress")

const pending = "pending"

// Idempotency collapses repeated creates carrying the same key onto the
// record created by the first one.
type Idempotency struct {
	RDB *redis.Client
}

// Begin claims key for resource. fresh is true when the caller should perform
// the create; otherwise id is the record created earlier under this key.
func (i *Idempotency) Begin(ctx context.Context, resource, key string) (id int64, fresh bool, err error) {
	k := fmt.Sprintf(KeyIdemCreate, resource, key)
	ok, err := i.RDB.SetNX(ctx, k, pending, TTLPending).Result()
	if err != nil {
		return 0, false, err
	}
	if ok {
		return 0, true, nil
	}
	v, err := i.RDB.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET; try once more
		return i.Begin(ctx, resource, key)
	}
	if err != nil {
		return 0, false, err
	}
	if v == pending {
		return 0, false, ErrInFlight
	}
	id, err = strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency value %q: %w", v, err)
	}
	return id, false, nil
}

func (i *Idempotency) Complete(ctx context.Context, resource, key string, id int64) error {
	k := fmt.Sprintf(KeyIdemCreate, resource, key)
	return i.RDB.Set(ctx, k, strconv.FormatInt(id, 10), TTLIdempotency).Err()
}

// Abort releases a claim after a failed create so the client may retry.
func (i *Idempotency) Abort(ctx context.Context, resource, key string) error {
	return i.RDB.Del(ctx, fmt.Sprintf(KeyIdemCreate, resource, key)).Err()
}

// Seen marks an event id as processed for service and reports whether it had
// already been marked.
func Seen(ctx context.Context, rdb *redis.Client, service, eventID string) (bool, error) {
	ok, err := rdb.SetNX(ctx, fmt.Sprintf(KeyDedup, service, eventID), "1", TTLDedup).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}
