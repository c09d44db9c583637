package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"axado-frete/frete/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStatsStore grava contadores de cotação em hashes do Redis:
//
//	<prefix>:total              ok / failed
//	<prefix>:minute:<yyyymmddhhmm>  ok / failed (com TTL)
//	<prefix>:policy:<policy>    ok / failed / reason:<motivo>
//	<prefix>:run:<run id>       ok / failed (com TTL, só com trackRuns)
type RedisStatsStore struct {
	rdb *redis.Client

	prefix string
	// ttl aplica apenas nas chaves por minuto e por execução.
	// total e policy são cumulativos e não expiram.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"

	trackRuns bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackRuns(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackRuns = track }
}

func NewRedisStatsStore(rdb *redis.Client, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "frete:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// counterKey é um hash incrementado por evento; expire indica se a chave
// recebe o TTL do store.
type counterKey struct {
	key    string
	expire bool
}

// counterKeys devolve os hashes tocados por ev, na ordem do layout descrito
// em RedisStatsStore.
func (s *RedisStatsStore) counterKeys(ev domain.QuoteEvent, at time.Time) []counterKey {
	keys := []counterKey{{key: s.prefix + ":total"}}
	if s.bucket == "minute" {
		keys = append(keys, counterKey{
			key:    fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504")),
			expire: true,
		})
	}
	if p := strings.TrimSpace(string(ev.Policy)); p != "" {
		keys = append(keys, counterKey{key: s.prefix + ":policy:" + p})
	}
	if id := strings.TrimSpace(ev.RunID); s.trackRuns && id != "" {
		keys = append(keys, counterKey{key: s.prefix + ":run:" + id, expire: true})
	}
	return keys
}

// Record incrementa ok ou failed em cada hash de counterKeys numa única
// pipeline. Falhas também somam reason:<motivo> no hash da política.
// Um store nil é um no-op.
func (s *RedisStatsStore) Record(ctx context.Context, ev domain.QuoteEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	outcome := "failed"
	if ev.OK {
		outcome = "ok"
	}
	policyKey := s.prefix + ":policy:" + strings.TrimSpace(string(ev.Policy))

	pipe := s.rdb.Pipeline()
	for _, k := range s.counterKeys(ev, at) {
		pipe.HIncrBy(ctx, k.key, outcome, 1)
		if k.key == policyKey && !ev.OK && ev.Reason != "" {
			pipe.HIncrBy(ctx, k.key, "reason:"+ev.Reason, 1)
		}
		if k.expire && s.ttl > 0 {
			pipe.Expire(ctx, k.key, s.ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record quote stats: %w", err)
	}
	return nil
}
