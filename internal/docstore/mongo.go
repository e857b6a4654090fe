package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
)

// Mongo is a Database backed by a MongoDB deployment.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo connects, pings the primary and returns the database handle.
// A malformed URI is a CONFIGURATION error; an unreachable cluster is a
// CONNECTIVITY error.
func ConnectMongo(ctx context.Context, uri, name string) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	if err := opts.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCategoryConfiguration, apperrors.CodeInvalidConfig,
			"malformed mongodb connection string", err)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, apperrors.NewConnectivityError(apperrors.CodeStoreUnavailable, "failed to connect to mongodb", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperrors.NewConnectivityError(apperrors.CodeStoreUnavailable, "mongodb ping failed", err)
	}

	return &Mongo{client: client, db: client.Database(name)}, nil
}

func (m *Mongo) Name() string { return m.db.Name() }

func (m *Mongo) Collection(name string) Collection {
	return &mongoCollection{coll: m.db.Collection(name)}
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) Name() string { return c.coll.Name() }

func (c *mongoCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	opts := options.Find().
		SetProjection(bson.M{IDField: 0}).
		SetSort(bson.D{{Key: IDField, Value: 1}})

	cur, err := c.coll.Find(ctx, toBSON(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, fromBSON(m))
	}
	return out, nil
}

func (c *mongoCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	return c.coll.CountDocuments(ctx, toBSON(filter))
}

func (c *mongoCollection) InsertMany(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	batch := make([]interface{}, len(docs))
	for i, d := range docs {
		batch[i] = bson.M(StripID(d))
	}
	_, err := c.coll.InsertMany(ctx, batch)
	return err
}

func (c *mongoCollection) UpdateOne(ctx context.Context, filter Filter, set Document, upsert bool) (bool, error) {
	res, err := c.coll.UpdateOne(ctx, toBSON(filter), bson.M{"$set": bson.M(Clone(set))},
		options.Update().SetUpsert(upsert))
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0 || res.UpsertedCount > 0, nil
}

func (c *mongoCollection) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, toBSON(filter))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func toBSON(f Filter) bson.M {
	out := bson.M{}
	for k, v := range f {
		out[k] = normalize(v)
	}
	return out
}

func fromBSON(m bson.M) Document {
	out := make(Document, len(m))
	for k, v := range m {
		out[k] = fromBSONValue(v)
	}
	return out
}

func fromBSONValue(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		return fromBSON(t)
	case bson.D:
		return fromBSON(t.Map())
	case primitive.A:
		out := make([]interface{}, len(t))
		for i, el := range t {
			out[i] = fromBSONValue(el)
		}
		return out
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC().Format("2006-01-02 15:04:05")
	}
	return normalize(v)
}
