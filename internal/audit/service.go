package audit

import (
	"context"
	"encoding/json"
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	kafkax "github.com/ariefcatur/nexus-admin/internal/kafka"
	"github.com/ariefcatur/nexus-admin/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"log/slog"
	"strings"
)

// Service writes one audit log line per catalog change event.
type Service struct {
	Redis       *redis.Client
	Log         *slog.Logger
	ServiceName string
}

// HandleChange is installed as the consumer handler. Undecodable messages are
// logged and skipped so they do not block the partition.
func (s *Service) HandleChange(ctx context.Context, m kafkago.Message) error {
	if t := kafkax.HeaderValue(m, kafkax.HeaderEventType); t != "" && !strings.HasPrefix(t, "catalog.") {
		return nil
	}
	if v := kafkax.HeaderValue(m, kafkax.HeaderEventVersion); v != "" && v != "1" {
		s.Log.Warn("skip unsupported event version", "offset", m.Offset, "version", v)
		return nil
	}

	var env catalog.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		s.Log.Warn("skip undecodable event", "offset", m.Offset, "err", err)
		return nil
	}
	if !strings.HasPrefix(env.EventType, "catalog.") {
		return nil
	}

	dup, err := redisx.Seen(ctx, s.Redis, s.ServiceName, env.EventID)
	if err != nil {
		return err
	}
	if dup {
		return nil
	}

	p, err := kafkax.UnwrapPayload[catalog.ChangePayload](env.Payload)
	if err != nil {
		s.Log.Warn("skip event with bad payload", "event_id", env.EventID, "err", err)
		return nil
	}

	attrs := []any{
		"event_id", env.EventID,
		"resource", p.Resource,
		"op", string(p.Op),
		"id", p.ID,
		"producer", env.Producer,
		"occurred_at", env.OccurredAt,
	}
	if env.TraceID != "" {
		attrs = append(attrs, "trace_id", env.TraceID)
	}
	if len(p.Record) > 0 {
		attrs = append(attrs, "record", string(p.Record))
	}
	s.Log.Info("catalog change", attrs...)
	return nil
}
