package adapters

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/portalkit/gridview/core"
)

// Register client
func init() {
	_ = register(&Redis{}, "redis")
}

var _ core.Adapter = (*Redis)(nil)

// Redis reads hashes as rows. The query is a key pattern, every hash whose
// key matches it becomes one row.
type Redis struct{}

func (r *Redis) Connect(url string) (core.Driver, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to redis database: %w", err)
	}
	c := redis.NewClient(opt)

	return &redisDriver{
		redis: c,
	}, nil
}
