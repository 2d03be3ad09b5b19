package adapters

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/portalkit/gridview/core"
)

func TestMongoReplyStream(t *testing.T) {
	r := require.New(t)

	id := primitive.NewObjectID()
	joined := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)

	reply, err := bson.Marshal(bson.D{
		{Key: "cursor", Value: bson.D{
			{Key: "firstBatch", Value: bson.A{
				bson.D{
					{Key: "_id", Value: id},
					{Key: "name", Value: "John"},
					{Key: "joined", Value: primitive.NewDateTimeFromTime(joined)},
				},
				bson.D{
					{Key: "name", Value: "Jane"},
					{Key: "tags", Value: bson.A{"a", "b"}},
					{Key: "address", Value: bson.D{{Key: "city", Value: "Ljubljana"}}},
				},
			}},
			{Key: "id", Value: int64(0)},
			{Key: "ns", Value: "portal.users"},
		}},
		{Key: "ok", Value: 1.0},
	})
	r.NoError(err)

	stream, err := mongoReplyStream(reply)
	r.NoError(err)
	r.Equal(core.Header{"_id", "name", "joined", "tags", "address"}, stream.Header())

	var rows []core.Row
	for stream.HasNext() {
		row, err := stream.Next()
		r.NoError(err)
		rows = append(rows, row)
	}

	r.Len(rows, 2)
	r.Equal(id.Hex(), rows[0]["_id"])
	r.Equal(joined, rows[0]["joined"])
	r.Equal([]any{"a", "b"}, rows[1]["tags"])
	r.Equal(map[string]any{"city": "Ljubljana"}, rows[1]["address"])
}

func TestMongoReplyWithoutCursor(t *testing.T) {
	r := require.New(t)

	reply, err := bson.Marshal(bson.D{{Key: "n", Value: int32(5)}, {Key: "ok", Value: 1.0}})
	r.NoError(err)

	stream, err := mongoReplyStream(reply)
	r.NoError(err)
	r.Equal(core.Header{"n", "ok"}, stream.Header())

	r.True(stream.HasNext())
	row, err := stream.Next()
	r.NoError(err)
	r.Equal(core.Row{"n": int32(5), "ok": 1.0}, row)
	r.False(stream.HasNext())
}

func TestNormalizeBSON(t *testing.T) {
	r := require.New(t)

	dec, err := primitive.ParseDecimal128("1234.50")
	r.NoError(err)

	r.True(decimal.RequireFromString("1234.5").Equal(normalizeBSON(dec).(decimal.Decimal)))
	r.Nil(normalizeBSON(primitive.Null{}))
	r.Equal([]byte{1, 2}, normalizeBSON(primitive.Binary{Data: []byte{1, 2}}))
	r.Equal("plain", normalizeBSON("plain"))
	r.Equal(
		map[string]any{"inner": []any{"x"}},
		normalizeBSON(primitive.M{"inner": primitive.A{"x"}}),
	)
}
