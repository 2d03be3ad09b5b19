package adapters

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/portalkit/gridview/core"
)

// Register client
func init() {
	_ = register(&Mongo{}, "mongo", "mongodb")
}

var _ core.Adapter = (*Mongo)(nil)

type Mongo struct{}

func (m *Mongo) Connect(rawURL string) (core.Driver, error) {
	// get database name from url
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("mongo: invalid url: %w", err)
	}

	opts := options.Client().ApplyURI(rawURL)
	client, err := mongo.Connect(context.TODO(), opts)
	if err != nil {
		return nil, err
	}

	return &mongoDriver{
		c:      client,
		dbName: strings.TrimPrefix(u.Path, "/"),
	}, nil
}
