package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"euchre-lite/history"
	"euchre-lite/replay"
)

const (
	redisKeyPrefix = "euchre:log:"
	redisIndexKey  = "euchre:logs"
)

// redisService stores each log as a hash holding the binary wire form, with
// a sorted set of ids scored by creation time.
type redisService struct {
	client *redis.Client
}

func NewRedisService(addr string) (Service, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &redisService{client: client}, nil
}

func (s *redisService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *redisService) Save(ctx context.Context, name string, l *history.Log) (string, error) {
	rec, err := newRecord(name, l)
	if err != nil {
		return "", err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	createdAtMs := rec.CreatedAt.UnixMilli()
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisKeyPrefix+rec.ID, map[string]any{
			"name":          rec.Name,
			"dealer":        rec.Dealer,
			"nodes":         rec.Nodes,
			"created_at_ms": createdAtMs,
			"payload":       replay.MarshalBinary(l.Raw()),
		})
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(createdAtMs), Member: rec.ID})
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *redisService) Load(ctx context.Context, id string) (*history.Log, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	payload, err := s.client.HGet(ctx, redisKeyPrefix+id, "payload").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodePayload(id, payload)
}

func (s *redisService) List(ctx context.Context) ([]Summary, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	ids, err := s.client.ZRevRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		fields, err := s.client.HMGet(ctx, redisKeyPrefix+id, "name", "dealer", "nodes", "created_at_ms").Result()
		if err != nil {
			return nil, err
		}
		if fields[0] == nil {
			// Hash expired or removed outside Delete.
			continue
		}
		sum := Summary{ID: id}
		sum.Name, _ = fields[0].(string)
		sum.Dealer, _ = fields[1].(string)
		if v, ok := fields[2].(string); ok {
			sum.Nodes, _ = strconv.Atoi(v)
		}
		if v, ok := fields[3].(string); ok {
			ms, _ := strconv.ParseInt(v, 10, 64)
			sum.CreatedAt = time.UnixMilli(ms).UTC()
		}
		out = append(out, sum)
	}
	return out, nil
}

func (s *redisService) Delete(ctx context.Context, id string) error {
	id, err := normalizeID(id)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := s.client.Del(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return err
	}
	if err := s.client.ZRem(ctx, redisIndexKey, id).Err(); err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
