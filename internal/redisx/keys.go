package redisx

import "time"

const (
	// Create idempotency: idem:{resource}:create:{idempotency_key} -> record id
	KeyIdemCreate = "idem:%s:create:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLPending     = 30 * time.Second
	TTLDedup       = 48 * time.Hour
)
