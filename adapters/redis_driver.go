package adapters

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/portalkit/gridview/core"
	"github.com/portalkit/gridview/core/builders"
)

// redisKeyField holds the key of the hash a row was read from.
const redisKeyField = "_key"

var _ core.Driver = (*redisDriver)(nil)

type redisDriver struct {
	redis *redis.Client
}

type redisHash struct {
	key    string
	fields map[string]string
}

func (c *redisDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	pattern := strings.TrimSpace(query)
	if pattern == "" {
		pattern = "*"
	}

	var keys []string
	iter := c.redis.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis.Scan: %w", err)
	}
	// SCAN may return a key more than once
	slices.Sort(keys)
	keys = slices.Compact(keys)

	hashes := make([]*redisHash, 0, len(keys))
	for _, key := range keys {
		typ, err := c.redis.Type(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis.Type: %w", err)
		}
		if typ != "hash" {
			continue
		}

		fields, err := c.redis.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis.HGetAll: %w", err)
		}
		hashes = append(hashes, &redisHash{key: key, fields: fields})
	}

	next, hasNext := builders.NextSlice(hashes, redisHashRow)

	result := builders.NewResultStreamBuilder().
		WithNextFunc(next, hasNext).
		WithHeader(redisHashHeader(hashes)).
		Build()

	return result, nil
}

func (c *redisDriver) Close() {
	c.redis.Close()
}

// redisHashHeader is the key field followed by the sorted union of all
// hash fields.
func redisHashHeader(hashes []*redisHash) core.Header {
	fields := make(map[string]struct{})
	for _, h := range hashes {
		for f := range h.fields {
			fields[f] = struct{}{}
		}
	}
	delete(fields, redisKeyField)

	names := make([]string, 0, len(fields))
	for f := range fields {
		names = append(names, f)
	}
	slices.Sort(names)
	return append(core.Header{redisKeyField}, names...)
}

func redisHashRow(h *redisHash) (core.Row, error) {
	row := make(core.Row, len(h.fields)+1)
	for f, v := range h.fields {
		if v == "" {
			row[f] = nil
			continue
		}
		row[f] = v
	}
	row[redisKeyField] = h.key
	return row, nil
}
