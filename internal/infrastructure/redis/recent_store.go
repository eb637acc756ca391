// Package redis guarda el estado efímero "modificado recientemente" de los artículos.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/retail-inventory/internal/application/ports"
	"github.com/jhoicas/retail-inventory/pkg/config"
)

var (
	_ ports.RecentTracker = (*RecentStore)(nil)
	_ ports.RecentTracker = NoopRecent{}
)

// NewClient abre la conexión a Redis y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// RecentStore un ZSET por negocio: miembro = itemID, score = instante de expiración (unix ms).
type RecentStore struct {
	rdb *goredis.Client
	ttl time.Duration
	now func() time.Time
}

// NewRecentStore construye el store con el TTL de la marca.
func NewRecentStore(rdb *goredis.Client, ttl time.Duration) *RecentStore {
	return &RecentStore{rdb: rdb, ttl: ttl, now: time.Now}
}

func recentKey(businessID string) string {
	return "recent:" + businessID
}

// Touch marca los artículos y purga las marcas vencidas del negocio.
func (s *RecentStore) Touch(ctx context.Context, businessID string, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	now := s.now()
	expires := float64(now.Add(s.ttl).UnixMilli())
	members := make([]goredis.Z, 0, len(itemIDs))
	for _, id := range itemIDs {
		members = append(members, goredis.Z{Score: expires, Member: id})
	}

	key := recentKey(businessID)
	_, err := s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.ZAdd(ctx, key, members...)
		p.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(now.UnixMilli(), 10))
		p.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("touch recent items: %w", err)
	}
	return nil
}

// List artículos cuya marca no ha vencido.
func (s *RecentStore) List(ctx context.Context, businessID string) ([]string, error) {
	ids, err := s.rdb.ZRangeByScore(ctx, recentKey(businessID), &goredis.ZRangeBy{
		Min: "(" + strconv.FormatInt(s.now().UnixMilli(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("list recent items: %w", err)
	}
	return ids, nil
}

// NoopRecent se usa cuando Redis no está configurado: no marca nada y lista vacío.
type NoopRecent struct{}

func (NoopRecent) Touch(context.Context, string, []string) error { return nil }

func (NoopRecent) List(context.Context, string) ([]string, error) { return []string{}, nil }
