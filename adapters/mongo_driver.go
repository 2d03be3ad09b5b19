package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/portalkit/gridview/core"
	"github.com/portalkit/gridview/core/builders"
)

var _ core.Driver = (*mongoDriver)(nil)

type mongoDriver struct {
	c      *mongo.Client
	dbName string
}

func (c *mongoDriver) getCurrentDatabase(ctx context.Context) (string, error) {
	if c.dbName != "" {
		return c.dbName, nil
	}

	dbs, err := c.c.ListDatabaseNames(ctx, bson.D{})
	if err != nil {
		return "", fmt.Errorf("failed to select default database: %w", err)
	}
	if len(dbs) < 1 {
		return "", errors.New("no databases found")
	}
	c.dbName = dbs[0]

	return c.dbName, nil
}

// Query runs an extended json command, e.g. {"find": "users"}. Documents of
// the first cursor batch become rows; commands without a cursor return
// their reply as a single row.
func (c *mongoDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	dbName, err := c.getCurrentDatabase(ctx)
	if err != nil {
		return nil, err
	}

	var command bson.D
	err = bson.UnmarshalExtJSON([]byte(query), false, &command)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal command: %q to bson: %w", query, err)
	}

	reply, err := c.c.Database(dbName).RunCommand(ctx, command).Raw()
	if err != nil {
		return nil, fmt.Errorf("RunCommand: %w", err)
	}

	return mongoReplyStream(reply)
}

func (c *mongoDriver) Close() {
	_ = c.c.Disconnect(context.TODO())
}

type mongoCursorReply struct {
	Cursor *struct {
		FirstBatch []bson.Raw `bson:"firstBatch"`
	} `bson:"cursor"`
}

// mongoReplyStream turns a command reply into a result stream.
func mongoReplyStream(reply bson.Raw) (*builders.ResultStream, error) {
	var parsed mongoCursorReply
	if err := bson.Unmarshal(reply, &parsed); err != nil {
		return nil, fmt.Errorf("bson.Unmarshal: %w", err)
	}

	docs := []bson.Raw{reply}
	if parsed.Cursor != nil {
		docs = parsed.Cursor.FirstBatch
	}

	header, err := mongoHeader(docs)
	if err != nil {
		return nil, err
	}

	next, hasNext := builders.NextSlice(docs, mongoDocumentRow)

	return builders.NewResultStreamBuilder().
		WithNextFunc(next, hasNext).
		WithHeader(header).
		Build(), nil
}

// mongoHeader collects the keys of all documents in first seen order.
func mongoHeader(docs []bson.Raw) (core.Header, error) {
	header := core.Header{}
	seen := make(map[string]struct{})

	for _, doc := range docs {
		elems, err := doc.Elements()
		if err != nil {
			return nil, fmt.Errorf("doc.Elements: %w", err)
		}
		for _, el := range elems {
			key := el.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			header = append(header, key)
		}
	}

	return header, nil
}

func mongoDocumentRow(doc bson.Raw) (core.Row, error) {
	var m bson.M
	if err := bson.Unmarshal(doc, &m); err != nil {
		return nil, fmt.Errorf("bson.Unmarshal: %w", err)
	}

	row := make(core.Row, len(m))
	for k, v := range m {
		row[k] = normalizeBSON(v)
	}
	return row, nil
}

// normalizeBSON converts bson specific values to the plain values the
// filter engine understands.
func normalizeBSON(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.Timestamp:
		return primitive.DateTime(int64(val.T) * 1000).Time().UTC()
	case primitive.Decimal128:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return val.String()
		}
		return d
	case primitive.Binary:
		return val.Data
	case primitive.Null, primitive.Undefined:
		return nil
	case primitive.M:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = normalizeBSON(inner)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = normalizeBSON(inner)
		}
		return out
	}
	return v
}
