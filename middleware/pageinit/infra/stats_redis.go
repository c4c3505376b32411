package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"painel-web/middleware/pageinit/domain"

	"github.com/redis/go-redis/v9"
)

type RedisStatsStore struct {
	rdb redis.UniversalClient

	prefix string
	// ttl aplica apenas em chaves de série temporal / por escopo.
	// total é cumulativo e não expira.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"

	trackScopes bool
}

var _ domain.StatsStore = (*RedisStatsStore)(nil)

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

func WithStatsTrackScopes(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackScopes = track }
}

func NewRedisStatsStore(rdb redis.UniversalClient, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "pageinit:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// reportFields converte o relatório nos campos do hash (só os não-zero).
func reportFields(rep domain.Report) map[string]int64 {
	fields := map[string]int64{"pages": 1}
	if rep.ThemeReset {
		fields["theme_resets"] = 1
	}
	if rep.ToastsShown > 0 {
		fields["toasts"] = int64(rep.ToastsShown)
	}
	if rep.FormsBound > 0 {
		fields["forms"] = int64(rep.FormsBound)
	}
	if rep.TooltipsReady > 0 {
		fields["tooltips"] = int64(rep.TooltipsReady)
	}
	if n := len(rep.Failures); n > 0 {
		fields["failures"] = int64(n)
	}
	for _, f := range rep.Failures {
		fields["failures:"+string(f.Category)]++
	}
	return fields
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	fields := reportFields(ev.Report)
	incr := func(pipe redis.Pipeliner, key string, expire bool) {
		for f, n := range fields {
			pipe.HIncrBy(ctx, key, f, n)
		}
		if expire && s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
	}

	pipe := s.rdb.Pipeline()
	incr(pipe, s.prefix+":total", false)

	if s.bucket == "minute" {
		incr(pipe, fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504")), true)
	}

	routeField := strings.TrimSpace(strings.TrimSpace(ev.Method) + " " + strings.TrimSpace(ev.Path))
	if routeField != "" {
		pipe.HIncrBy(ctx, s.prefix+":route", routeField+":pages", 1)
		if n := len(ev.Report.Failures); n > 0 {
			pipe.HIncrBy(ctx, s.prefix+":route", routeField+":failures", int64(n))
		}
	}

	if s.trackScopes {
		if scope := strings.TrimSpace(ev.Scope); scope != "" {
			incr(pipe, s.prefix+":scope:"+scope, true)
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
